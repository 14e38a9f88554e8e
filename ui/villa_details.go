package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"guadavillas/config"
	appmodel "guadavillas/model"
	"guadavillas/storage"
)

const (
	fieldDates = iota
	fieldGuests
)

type detailsState struct {
	visible bool
	villa   storage.Villa

	dates  textinput.Model
	guests int
	field  int

	submitting bool
	reference  string // set once the request is confirmed
	err        string
}

func newDetailsState() detailsState {
	dates := textinput.New()
	dates.Placeholder = "Arrivée - Départ"
	dates.Prompt = ""
	dates.CharLimit = 40
	dates.Width = 30

	return detailsState{dates: dates, guests: 1}
}

func (a *AppView) openDetails(v storage.Villa) tea.Cmd {
	a.details = newDetailsState()
	a.details.visible = true
	a.details.villa = v
	return a.details.dates.Focus()
}

func (a *AppView) closeDetails() {
	a.details.dates.Blur()
	a.details = newDetailsState()
}

func (a AppView) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &a.details

	if msg.String() == "esc" {
		a.closeDetails()
		return a, nil
	}

	// Confirmation on screen: wait for it to close itself
	if d.reference != "" || d.submitting {
		return a, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		if d.field == fieldDates {
			d.field = fieldGuests
			d.dates.Blur()
			return a, nil
		}
		d.field = fieldDates
		cmd := d.dates.Focus()
		return a, cmd

	case "enter":
		req := appmodel.BookingRequest{
			VillaID: d.villa.ID,
			Dates:   d.dates.Value(),
			Guests:  d.guests,
		}
		d.submitting = true
		d.err = ""
		return a, a.dataModel.SubmitBooking(req)
	}

	if d.field == fieldGuests {
		switch msg.String() {
		case "+", "=", "right", "l":
			if d.guests < d.villa.Guests {
				d.guests++
			}
		case "-", "left", "h":
			if d.guests > 1 {
				d.guests--
			}
		}
		return a, nil
	}

	var cmd tea.Cmd
	d.dates, cmd = d.dates.Update(msg)
	return a, cmd
}

func (a AppView) handleBookingConfirmed(msg bookingConfirmedMsg) (tea.Model, tea.Cmd) {
	// The modal was closed, or reopened on another villa, meanwhile
	if !a.details.visible || msg.Request.VillaID != a.details.villa.ID {
		return a, nil
	}

	a.details.submitting = false
	if msg.Err != nil {
		a.details.err = bookingErrorText(msg.Err)
		return a, nil
	}

	config.Log.Info("booking request confirmed",
		zap.String("villa", msg.Request.VillaID),
		zap.Int("guests", msg.Request.Guests),
		zap.String("reference", msg.Reference))

	a.details.reference = msg.Reference
	a.details.dates.Blur()
	return a, appmodel.ResetBookingAfter(msg.Reference)
}

func (a AppView) handleBookingReset(msg bookingResetMsg) (tea.Model, tea.Cmd) {
	if a.details.visible && a.details.reference == msg.Reference {
		a.closeDetails()
	}
	return a, nil
}

func bookingErrorText(err error) string {
	switch {
	case errors.Is(err, appmodel.ErrDatesRequired):
		return "Veuillez indiquer vos dates."
	case errors.Is(err, appmodel.ErrGuestCount):
		return "Nombre de voyageurs invalide."
	case errors.Is(err, storage.ErrVillaNotFound):
		return "Cette villa n'est plus disponible."
	default:
		return "Réservation impossible: " + err.Error()
	}
}

func (a AppView) renderDetailsModal(width, height int) string {
	d := a.details
	v := d.villa

	modalWidth := min(90, width-4)
	inner := modalWidth - 6

	title := TitleStyle.Render(v.Name)
	subtitle := HighlightStyle.Render(fmt.Sprintf("★ %.1f", v.Rating)) +
		DimStyle.Render(fmt.Sprintf(" (%d avis) • %s", v.Reviews, v.Location))

	heading := lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	about := lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render("À propos de ce logement"),
		lipgloss.NewStyle().Width(inner).Render(v.Description),
	)

	var amenities []string
	for _, am := range v.Amenities {
		amenities = append(amenities, SelectedStyle.Render("✓ ")+am)
	}
	equipment := lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render("Équipements"),
		lipgloss.NewStyle().Width(inner).Render(strings.Join(amenities, "   ")),
	)

	price := PriceStyle.Render(fmt.Sprintf("%d€", v.Price)) + DimStyle.Render(" / nuit")

	var booking string
	if d.reference != "" {
		booking = lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Foreground(successColor).Bold(true).Render("✓ Demande envoyée !"),
			"Notre équipe vous recontactera sous 24h pour finaliser votre séjour.",
			DimStyle.Render("Référence: "+d.reference),
		)
	} else {
		booking = a.renderBookingForm(inner)
	}

	footer := FormatFooter("Tab", "Champ", "+/-", "Voyageurs", "Enter", "Réserver", "Esc", "Fermer")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		"",
		about,
		"",
		equipment,
		"",
		price,
		booking,
		"",
		footer,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

func (a AppView) renderBookingForm(width int) string {
	d := a.details
	q := appmodel.Quote(d.villa)

	label := func(s string, field int) string {
		if d.field == field {
			return SelectedStyle.Render("› " + s)
		}
		return DimStyle.Render("  " + s)
	}

	guests := fmt.Sprintf("%d personne", d.guests)
	if d.guests > 1 {
		guests += "s"
	}

	row := func(left, right string) string {
		gap := width - lipgloss.Width(left) - lipgloss.Width(right)
		return left + strings.Repeat(" ", max(gap, 1)) + right
	}

	lines := []string{
		"",
		label("Dates", fieldDates) + "  " + d.dates.View(),
		label("Voyageurs", fieldGuests) + "  " + fmt.Sprintf("‹ %s ›", guests),
		"",
		row(fmt.Sprintf("%d€ x %d nuits", q.Nightly, q.Nights), fmt.Sprintf("%d€", q.Subtotal)),
		row("Frais de ménage", fmt.Sprintf("%d€", q.Cleaning)),
		lipgloss.NewStyle().Bold(true).Render(row("Total", fmt.Sprintf("%d€", q.Total))),
	}

	switch {
	case d.submitting:
		lines = append(lines, "", DimStyle.Render("Envoi de la demande..."))
	case d.err != "":
		lines = append(lines, "", ErrorStyle.Render(d.err))
	default:
		lines = append(lines, "", DimStyle.Render("Aucun débit immédiat"))
	}

	return strings.Join(lines, "\n")
}

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"guadavillas/storage"
)

const (
	QuoteNights = 7
	CleaningFee = 150 // EUR
)

// ConfirmationDelay is how long the booking confirmation stays on screen.
const ConfirmationDelay = 2500 * time.Millisecond

var (
	ErrDatesRequired = errors.New("dates are required")
	ErrGuestCount    = errors.New("guest count out of range")
)

// PriceQuote is the price breakdown shown under a villa's details.
type PriceQuote struct {
	Nights   int
	Nightly  int
	Subtotal int
	Cleaning int
	Total    int
}

// Quote prices a week at villa, cleaning included.
func Quote(villa storage.Villa) PriceQuote {
	subtotal := villa.Price * QuoteNights
	return PriceQuote{
		Nights:   QuoteNights,
		Nightly:  villa.Price,
		Subtotal: subtotal,
		Cleaning: CleaningFee,
		Total:    subtotal + CleaningFee,
	}
}

// BookingRequest is a booking form submission. Nothing is persisted.
type BookingRequest struct {
	VillaID string
	Dates   string
	Guests  int
	Name    string
	Email   string
}

func (r BookingRequest) Validate(villa storage.Villa) error {
	if r.VillaID != villa.ID {
		return fmt.Errorf("%w: %s", storage.ErrVillaNotFound, r.VillaID)
	}
	if strings.TrimSpace(r.Dates) == "" {
		return ErrDatesRequired
	}
	if r.Guests < 1 || r.Guests > villa.Guests {
		return fmt.Errorf("%w: %d (1-%d)", ErrGuestCount, r.Guests, villa.Guests)
	}
	return nil
}

// SubmitBooking validates req against the catalog and answers with a
// reference. The request goes nowhere else.
func (m *Model) SubmitBooking(req BookingRequest) tea.Cmd {
	catalog := m.Catalog
	return func() tea.Msg {
		ctx, cancel := contextWithDefaultTimeout()
		defer cancel()

		villa, err := catalog.Get(ctx, req.VillaID)
		if err != nil {
			return BookingConfirmedMsg{Request: req, Err: err}
		}
		if err := req.Validate(villa); err != nil {
			return BookingConfirmedMsg{Request: req, Err: err}
		}
		return BookingConfirmedMsg{
			Request:   req,
			Reference: strings.ToUpper(uuid.NewString()[:8]),
		}
	}
}

// ResetBookingAfter closes the confirmation once ConfirmationDelay elapsed.
func ResetBookingAfter(reference string) tea.Cmd {
	return tea.Tick(ConfirmationDelay, func(time.Time) tea.Msg {
		return BookingResetMsg{Reference: reference}
	})
}

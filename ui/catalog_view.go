package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"guadavillas/storage"
)

// border (2) + four lines of content
const cardHeight = 6

const emptyCatalogText = "Aucune villa ne correspond à votre recherche."

func (a AppView) renderHeader() string {
	brand := TitleStyle.Render("GuadaVillas")
	tagline := DimStyle.Render("  Villas de prestige en Guadeloupe")

	hints := HelpStyle.Render("? Aide")
	if !a.dataModel.PanelOpen {
		hints = HelpStyle.Render("Alt+C Parler à Lola  ? Aide")
	}

	gap := a.width - lipgloss.Width(brand) - lipgloss.Width(tagline) - lipgloss.Width(hints)
	if gap < 1 {
		return brand + tagline
	}
	return brand + tagline + strings.Repeat(" ", gap) + hints
}

func (a AppView) renderSearchBar() string {
	if a.focus == focusSearch {
		return a.searchInput.View()
	}
	if a.dataModel.Query == "" {
		return DimStyle.Render(a.searchInput.Prompt + a.searchInput.Placeholder + "  (/)")
	}
	return a.searchInput.Prompt + a.dataModel.Query
}

func (a AppView) renderCategoryTabs() string {
	var tabs []string
	for _, c := range storage.Categories {
		label := " " + c.Label() + " "
		if c == a.dataModel.Category {
			tabs = append(tabs, SelectedStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, DimStyle.Render(" "+label+" "))
		}
	}
	count := DimStyle.Render(fmt.Sprintf("  %d villa(s)", len(a.dataModel.Villas)))
	return strings.Join(tabs, " ") + count
}

func (a AppView) renderCatalog(width, height int) string {
	if width <= 0 {
		return ""
	}

	box := lipgloss.NewStyle().Width(width).Height(height)
	villas := a.dataModel.Villas

	if len(villas) == 0 {
		return box.Render("\n" + DimStyle.Render("  "+emptyCatalogText))
	}

	visible := height / cardHeight
	if visible < 1 {
		visible = 1
	}

	// Scroll so the selected card stays on screen
	start := 0
	if a.selectedVilla >= visible {
		start = a.selectedVilla - visible + 1
	}
	end := min(start+visible, len(villas))

	var cards []string
	for i := start; i < end; i++ {
		cards = append(cards, renderVillaCard(villas[i], i == a.selectedVilla, width))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, cards...))
}

func renderVillaCard(v storage.Villa, selected bool, width int) string {
	// border (2) + padding (2)
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	rating := fmt.Sprintf("★ %.1f (%d avis)", v.Rating, v.Reviews)
	nameWidth := inner - runewidth.StringWidth(rating) - 1
	name := runewidth.Truncate(v.Name, max(nameWidth, 1), "…")
	gap := inner - runewidth.StringWidth(name) - runewidth.StringWidth(rating)

	nameStyle := lipgloss.NewStyle().Bold(true)
	if selected {
		nameStyle = SelectedStyle
	}

	line1 := nameStyle.Render(name) + strings.Repeat(" ", max(gap, 1)) + HighlightStyle.Render(rating)
	line2 := DimStyle.Render(runewidth.Truncate(v.Location, inner, "…"))
	line3 := runewidth.Truncate(fmt.Sprintf("%d Chb. · %d Pers.", v.Bedrooms, v.Guests), inner, "…")
	line4 := PriceStyle.Render(fmt.Sprintf("%d€", v.Price)) + DimStyle.Render(" / nuit")
	if selected {
		line4 += DimStyle.Render("  Enter Voir détails")
	}

	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Width(width - 2).Render(strings.Join([]string{line1, line2, line3, line4}, "\n"))
}

func (a AppView) renderStatusBar() string {
	if a.flash != "" {
		return SelectedStyle.Render(a.flash)
	}

	var footer string
	switch a.focus {
	case focusSearch:
		footer = FormatFooter("Enter", "Rechercher", "Esc", "Effacer")
	case focusConcierge:
		footer = FormatFooter("Enter", "Envoyer", "PgUp/PgDn", "Défiler", "Alt+Y", "Copier", "Esc", "Catalogue", "Alt+C", "Fermer")
	default:
		footer = FormatFooter("j/k", "Naviguer", "Enter", "Détails", "/", "Rechercher", "Tab", "Catégorie", "Alt+C", "Lola")
	}

	model := DimStyle.Render(a.dataModel.Config.Provider + ":" + a.dataModel.Config.Model())
	gap := a.width - lipgloss.Width(footer) - lipgloss.Width(model)
	if gap < 1 {
		return StatusStyle.Render(footer)
	}
	return StatusStyle.Render(footer) + strings.Repeat(" ", gap) + model
}

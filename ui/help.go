package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("GuadaVillas - Raccourcis clavier")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	catalog := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Catalogue"),
		"• j/k, ↑/↓     Choisir une villa",
		"• g/G          Première / dernière",
		"• Enter        Voir détails",
		"• /            Rechercher",
		"• Tab          Catégorie suivante",
		"• Esc          Effacer la recherche",
	)

	booking := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Réservation"),
		"• Tab          Dates / voyageurs",
		"• +/-          Nombre de voyageurs",
		"• Enter        Réserver maintenant",
		"• Esc          Fermer",
	)

	concierge := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Lola"),
		"• Alt+C        Ouvrir / fermer",
		"• i            Écrire à Lola",
		"• Enter        Envoyer",
		"• PgUp/PgDn    Défiler",
		"• Alt+Y        Copier la réponse",
		"• Alt+A        Copier la conversation",
		"• Esc          Retour au catalogue",
	)

	global := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Général"),
		"• ?            Cette aide",
		"• Alt+Q        Quitter",
	)

	columnStyle := lipgloss.NewStyle().Width(40).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, catalog, "", booking)),
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, concierge, "", global)),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render("Appuyez sur ? ou Esc pour fermer")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}

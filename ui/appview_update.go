package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"guadavillas/config"
)

const flashDuration = 2 * time.Second

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		// The tick chain stops by itself once the exchange settled
		if !a.dataModel.Busy() {
			return a, nil
		}
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		a.updateViewportContent(false)
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.searchInput.Width = a.width - 4
		a.resizeConcierge()

		firstSize := !a.ready
		a.ready = true
		a.updateViewportContent(true)

		// Rendered markdown depends on the width
		if firstSize || len(a.rendered) > 0 {
			return a, a.renderSettledTurns()
		}
		return a, nil

	case catalogFilteredMsg:
		if msg.Err != nil {
			config.Log.Warn("catalog filter failed", zap.Error(msg.Err))
		}
		if a.dataModel.ApplyCatalogFilter(msg) {
			a.clampSelection()
		}
		return a, nil

	case conciergeUpdateMsg:
		return a.handleConciergeUpdate(msg)

	case markdownRenderedMsg:
		a.rendered[msg.MessageIndex] = msg.Rendered
		a.updateViewportContent(false)
		return a, nil

	case bookingConfirmedMsg:
		return a.handleBookingConfirmed(msg)

	case bookingResetMsg:
		return a.handleBookingReset(msg)

	case clipboardCopiedMsg:
		a.flash = clipboardFeedback(msg)
		a.flashTicks++
		ticks := a.flashTicks
		return a, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return flashTickMsg{Seq: ticks}
		})

	case flashTickMsg:
		// Only the latest flash clears the line
		if msg.Seq == a.flashTicks {
			a.flash = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)
	}

	// Cursor blink and other component messages
	switch a.focus {
	case focusSearch:
		a.searchInput, cmd = a.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	case focusConcierge:
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.details.visible {
		a.details.dates, cmd = a.details.dates.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "alt+q":
		a.dataModel.Quitting = true
		a.dataModel.Shutdown()
		return a, tea.Quit
	}

	if a.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			a.showHelp = false
		}
		return a, nil
	}

	if a.details.visible {
		return a.handleDetailsKey(msg)
	}

	switch msg.String() {
	case "alt+c":
		return a.togglePanel()
	case "alt+y":
		return a, a.dataModel.CopyLastReply()
	case "alt+a":
		return a, a.dataModel.CopyTranscript()
	}

	switch a.focus {
	case focusSearch:
		return a.handleSearchKey(msg)
	case focusConcierge:
		return a.handleConciergeKey(msg)
	default:
		return a.handleCatalogKey(msg)
	}
}

// togglePanel opens or closes Lola's panel. The transcript and the chat
// session are left alone either way.
func (a AppView) togglePanel() (tea.Model, tea.Cmd) {
	a.dataModel.TogglePanel()

	if !a.dataModel.PanelOpen {
		a.input.Blur()
		a.focus = focusCatalog
		return a, nil
	}

	a.focus = focusConcierge
	a.searchInput.Blur()
	a.updateViewportContent(true)

	cmd := a.input.Focus()
		return a, cmd
}

func (a AppView) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	villas := a.dataModel.Villas

	switch msg.String() {
	case "?":
		a.showHelp = true
	case "/":
		a.focus = focusSearch
		cmd := a.searchInput.Focus()
		return a, cmd
	case "tab":
		a.selectedVilla = 0
		return a, a.dataModel.CycleCategory()
	case "j", "down":
		if a.selectedVilla < len(villas)-1 {
			a.selectedVilla++
		}
	case "k", "up":
		if a.selectedVilla > 0 {
			a.selectedVilla--
		}
	case "g", "home":
		a.selectedVilla = 0
	case "G", "end":
		if len(villas) > 0 {
			a.selectedVilla = len(villas) - 1
		}
	case "enter":
		if len(villas) == 0 {
			return a, nil
		}
		cmd := a.openDetails(villas[a.selectedVilla])
		return a, cmd
	case "i":
		if a.dataModel.PanelOpen {
			a.focus = focusConcierge
			cmd := a.input.Focus()
		return a, cmd
		}
	}
	return a, nil
}

func (a AppView) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searchInput.Blur()
		a.focus = focusCatalog
		a.selectedVilla = 0
		return a, a.dataModel.Search(a.searchInput.Value())
	case "esc":
		a.searchInput.Reset()
		a.searchInput.Blur()
		a.focus = focusCatalog
		a.selectedVilla = 0
		return a, a.dataModel.Search("")
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a AppView) handleConciergeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		a.input.Blur()
		a.focus = focusCatalog
		return a, nil
	case "pgup", "ctrl+u":
		a.viewport.HalfViewUp()
		return a, nil
	case "pgdown", "ctrl+d":
		a.viewport.HalfViewDown()
		return a, nil
	case "enter":
		return a.sendInput()
	}

	// Input is disabled while Lola answers
	if a.dataModel.Busy() {
		return a, nil
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a AppView) sendInput() (tea.Model, tea.Cmd) {
	cmd := a.dataModel.SendToConcierge(a.input.Value())
	if cmd == nil {
		if !a.dataModel.Busy() {
			// blank input
			a.input.Reset()
		}
		return a, nil
	}

	a.input.Reset()
	a.updateViewportContent(true)
	return a, tea.Batch(cmd, a.loadingSpinner.Tick)
}

func (a *AppView) clampSelection() {
	if a.selectedVilla >= len(a.dataModel.Villas) {
		a.selectedVilla = len(a.dataModel.Villas) - 1
	}
	if a.selectedVilla < 0 {
		a.selectedVilla = 0
	}
}

func clipboardFeedback(msg clipboardCopiedMsg) string {
	if msg.Err != nil {
		config.Log.Warn("clipboard copy failed", zap.String("what", msg.What), zap.Error(msg.Err))
		return "Copie impossible: " + msg.Err.Error()
	}
	switch msg.What {
	case "transcript":
		return "Conversation copiée"
	default:
		return "Réponse copiée"
	}
}

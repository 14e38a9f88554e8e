package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"guadavillas/config"
)

// handleConciergeUpdate repaints the transcript for one fragment and asks
// for the next one. The exchange keeps running while the panel is closed;
// the transcript is simply not shown.
func (a AppView) handleConciergeUpdate(msg conciergeUpdateMsg) (tea.Model, tea.Cmd) {
	u := msg.Update

	if !u.Settled() {
		// Follow the reply unless the user scrolled up to read
		a.updateViewportContent(a.viewport.AtBottom())
		return a, msg.Next()
	}

	if config.Debug {
		config.Log.Debug("concierge update settled",
			zap.Int("turn", u.Index),
			zap.Int("length", len(u.Turn.Content)))
	}

	delete(a.rendered, u.Index)
	a.updateViewportContent(true)

	if u.Index < 0 || u.Turn.Content == "" {
		return a, nil
	}
	return a, a.renderMarkdownAsync(u.Index, u.Turn.Content)
}

package model

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"guadavillas/config"
)

// SendToConcierge records text as a user turn and starts the exchange in
// the background. It returns nil when the concierge refused the text
// (blank, or an exchange already in flight).
//
// Updates travel over an unbuffered channel: the exchange waits for the UI
// to take each fragment before reading the next one. After Shutdown the
// exchange stops waiting and its goroutine exits.
func (m *Model) SendToConcierge(text string) tea.Cmd {
	ex, ok := m.Concierge.Begin(text)
	if !ok {
		return nil
	}

	updates := make(chan TurnUpdate)
	concierge := m.Concierge
	ctx := m.ctx

	go func() {
		defer close(updates)
		concierge.Run(ctx, ex, func(u TurnUpdate) {
			select {
			case updates <- u:
			case <-ctx.Done():
			}
		})
	}()

	if config.Debug {
		config.Log.Debug("concierge exchange started", zap.Int("user_turn", ex.UserIndex))
	}
	return WaitForConciergeUpdate(updates)
}

// WaitForConciergeUpdate delivers the next update of an exchange. The UI
// calls it again after each ConciergeUpdateMsg until the update is settled.
func WaitForConciergeUpdate(updates <-chan TurnUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return ConciergeUpdateMsg{Update: u, updates: updates}
	}
}

// Next returns the command waiting for the update after msg, or nil once
// the exchange settled.
func (msg ConciergeUpdateMsg) Next() tea.Cmd {
	if msg.Update.Settled() || msg.updates == nil {
		return nil
	}
	return WaitForConciergeUpdate(msg.updates)
}

// CopyLastReply copies the latest concierge reply to the clipboard.
func (m *Model) CopyLastReply() tea.Cmd {
	turn, ok := m.Transcript.LastBy(SpeakerAssistant)
	return func() tea.Msg {
		if !ok {
			return ClipboardCopiedMsg{What: "reply"}
		}
		return ClipboardCopiedMsg{What: "reply", Err: clipboard.WriteAll(turn.Content)}
	}
}

// CopyTranscript copies the whole conversation as plain text.
func (m *Model) CopyTranscript() tea.Cmd {
	text := FormatTranscript(m.Transcript.Turns())
	return func() tea.Msg {
		return ClipboardCopiedMsg{What: "transcript", Err: clipboard.WriteAll(text)}
	}
}

// FormatTranscript renders turns as "Speaker: content" paragraphs.
func FormatTranscript(turns []Turn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(SpeakerLabel(turn.Speaker))
		b.WriteString(": ")
		b.WriteString(turn.Content)
	}
	return b.String()
}

// SpeakerLabel is the display name of a speaker.
func SpeakerLabel(s Speaker) string {
	if s == SpeakerUser {
		return "Vous"
	}
	return "Lola"
}

func contextWithDefaultTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"go.uber.org/zap"

	"guadavillas/config"
	appmodel "guadavillas/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

const thinkingText = "Lola réfléchit..."

func (a *AppView) updateViewportContent(gotoBottom bool) {
	turns := a.dataModel.Transcript.Turns()
	streaming := a.dataModel.Transcript.HasOpenTurn()
	width := a.viewport.Width
	if width <= 0 {
		width = 40
	}

	var content strings.Builder

	for i, turn := range turns {
		timestamp := DimStyle.Render(turn.CreatedAt.Format("[15:04]"))

		if turn.Speaker == appmodel.SpeakerUser {
			role := UserStyle.Render(appmodel.SpeakerLabel(turn.Speaker))
			content.WriteString(formatUserMessage(timestamp, role, wrapText(turn.Content, width-2)))
			continue
		}

		role := AssistantStyle.Render(appmodel.SpeakerLabel(turn.Speaker))

		var body string
		switch {
		case streaming && i == len(turns)-1 && turn.Content == "":
			body = a.thinkingLine()
		case streaming && i == len(turns)-1:
			body = wrapText(turn.Content, width) + "▋"
		default:
			rendered, ok := a.rendered[i]
			if !ok {
				rendered = wrapText(turn.Content, width)
			}
			body = rendered
		}

		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, body))
	}

	// Waiting for the chat session, before the reply turn exists
	if a.dataModel.Busy() && !streaming {
		content.WriteString(a.thinkingLine())
		content.WriteString("\n")
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func (a AppView) thinkingLine() string {
	return fmt.Sprintf("%s %s", a.loadingSpinner.View(), DimStyle.Render(thinkingText))
}

func formatUserMessage(timestamp, role, content string) string {
	bar := UserStyle.Render("┃")

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func (a AppView) renderConciergePanel(width, height int) string {
	inner := width - 4

	status := DimStyle.Render("• En ligne")
	if a.dataModel.Busy() {
		status = a.thinkingLine()
	}
	title := TitleStyle.Render("Lola Concierge") + "  " + status

	separator := DimStyle.Render(strings.Repeat("─", max(inner, 0)))

	input := a.input.View()
	if a.dataModel.Busy() {
		input = DimStyle.Render(a.input.Prompt + thinkingText)
	}

	style := PanelStyle
	if a.focus != focusConcierge {
		style = style.BorderForeground(borderColor)
	}

	return style.
		Width(width - 2).
		Height(height - 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			a.viewport.View(),
			separator,
			input,
		))
}

// renderSettledTurns re-renders every finished assistant turn as markdown.
func (a AppView) renderSettledTurns() tea.Cmd {
	turns := a.dataModel.Transcript.Turns()
	streaming := a.dataModel.Transcript.HasOpenTurn()

	var cmds []tea.Cmd
	for i, turn := range turns {
		if turn.Speaker != appmodel.SpeakerAssistant || turn.Content == "" {
			continue
		}
		if streaming && i == len(turns)-1 {
			continue
		}
		cmds = append(cmds, a.renderMarkdownAsync(i, turn.Content))
	}
	return tea.Batch(cmds...)
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.viewport.Width
	return func() tea.Msg {
		startTime := time.Now()
		rendered := renderMarkdown(content, width)

		if config.Debug {
			config.Log.Debug("markdown rendered",
				zap.Int("turn", messageIndex),
				zap.Int("length", len(content)),
				zap.Duration("elapsed", time.Since(startTime)))
		}

		return markdownRenderedMsg{
			MessageIndex: messageIndex,
			Rendered:     rendered,
		}
	}
}

// renderMarkdown renders a reply for the terminal. Autolink stays off so
// URLs remain plain text the terminal can detect.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	content = preprocessLinks(content)

	customExt := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	return postProcessMarkdown(strings.TrimRight(string(rendered), "\n"))
}

func postProcessMarkdown(rendered string) string {
	rendered = fixInlineCode(rendered)
	return colorURLs(rendered)
}

// preprocessLinks turns [text](url) into the bare url.
func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

// fixInlineCode swaps the renderer's blue background for red text.
func fixInlineCode(s string) string {
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func colorURLs(s string) string {
	return urlRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

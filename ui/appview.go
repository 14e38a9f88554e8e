package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "guadavillas/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport    viewport.Model  // concierge transcript
	input       textinput.Model // concierge input
	searchInput textinput.Model // hero search

	// Window state
	width  int
	height int
	ready  bool

	focus    focusArea
	showHelp bool

	// Catalog
	selectedVilla int

	// Villa details and booking modal
	details detailsState

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// Markdown rendering of settled assistant turns, by turn index
	rendered map[int]string

	// Short status line message (clipboard feedback)
	flash      string
	flashTicks int
}

func NewAppView(dataModel *appmodel.Model) AppView {
	input := textinput.New()
	input.Placeholder = "Posez votre question..."
	input.Prompt = "> "
	input.CharLimit = 1000

	searchInput := textinput.New()
	searchInput.Placeholder = "Où souhaitez-vous aller ? (ex: Deshaies)"
	searchInput.Prompt = "🔍 "
	searchInput.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = AssistantStyle

	return AppView{
		dataModel:      dataModel,
		viewport:       viewport.New(0, 0),
		input:          input,
		searchInput:    searchInput,
		loadingSpinner: s,
		focus:          focusCatalog,
		details:        newDetailsState(),
		rendered:       make(map[int]string),
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.dataModel.RefreshCatalog(),
	)
}

func (a AppView) View() string {
	if a.dataModel.Quitting {
		return ""
	}
	if !a.ready {
		return "Chargement de GuadaVillas..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Help (always on top)
	// 2. Villa details / booking
	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.details.visible {
		return a.renderDetailsModal(a.width, a.height)
	}

	bodyHeight := a.bodyHeight()
	catalogWidth, panelWidth := a.columnWidths()

	body := a.renderCatalog(catalogWidth, bodyHeight)
	if a.dataModel.PanelOpen {
		panel := a.renderConciergePanel(panelWidth, bodyHeight)
		if catalogWidth == 0 {
			body = panel
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, panel)
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderHeader(),
		a.renderSearchBar(),
		a.renderCategoryTabs(),
		body,
		a.renderStatusBar(),
	)
}

// header, search, tabs and status bar take one line each
const chromeHeight = 4

func (a AppView) bodyHeight() int {
	h := a.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

// columnWidths splits the screen between catalog and concierge panel. On
// narrow terminals the open panel takes the whole width.
func (a AppView) columnWidths() (catalog, panel int) {
	if !a.dataModel.PanelOpen {
		return a.width, 0
	}
	panel = panelWidthFor(a.width)
	return a.width - panel, panel
}

func panelWidthFor(width int) int {
	if width < 90 {
		return width
	}
	return width * 2 / 5
}

// resizeConcierge fits the transcript viewport and input into the panel.
func (a *AppView) resizeConcierge() {
	// sized even while closed so reopening shows the transcript at once
	panelWidth := panelWidthFor(a.width)

	// panel border (2) + padding (2)
	inner := panelWidth - 4
	if inner < 10 {
		inner = 10
	}
	// border (2) + title (1) + separator (1) + input (1)
	vpHeight := a.bodyHeight() - 5
	if vpHeight < 1 {
		vpHeight = 1
	}

	a.viewport.Width = inner
	a.viewport.Height = vpHeight
	a.input.Width = inner - lipgloss.Width(a.input.Prompt) - 1
}

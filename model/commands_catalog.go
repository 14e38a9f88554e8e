package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"guadavillas/storage"
)

// RefreshCatalog re-runs the catalog filter with the current category and
// query.
func (m *Model) RefreshCatalog() tea.Cmd {
	catalog := m.Catalog
	category, query := m.Category, m.Query
	return func() tea.Msg {
		ctx, cancel := contextWithDefaultTimeout()
		defer cancel()

		villas, err := catalog.Filter(ctx, category, query)
		return CatalogFilteredMsg{Category: category, Query: query, Villas: villas, Err: err}
	}
}

// ApplyCatalogFilter stores a filter result unless a newer filter was
// requested since. It reports whether the result was applied.
func (m *Model) ApplyCatalogFilter(msg CatalogFilteredMsg) bool {
	if msg.Category != m.Category || msg.Query != m.Query {
		return false
	}
	if msg.Err != nil {
		return false
	}
	m.Villas = msg.Villas
	return true
}

// Search sets the hero search query. Like the site's hero form, it resets
// the category to all.
func (m *Model) Search(query string) tea.Cmd {
	m.Query = query
	m.Category = storage.CategoryAll
	return m.RefreshCatalog()
}

// CycleCategory moves to the next category tab.
func (m *Model) CycleCategory() tea.Cmd {
	m.Category = m.Category.Next()
	return m.RefreshCatalog()
}

package model

import (
	"context"

	"guadavillas/config"
	"guadavillas/storage"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config    *config.Config
	Catalog   *storage.Catalog
	Concierge *Concierge

	// Application data
	Transcript *Transcript
	Category   storage.Category
	Query      string
	Villas     []storage.Villa

	// Runtime state (not UI)
	PanelOpen bool
	Quitting  bool

	// Application metadata
	Version string
	License string

	// Lifetime of background exchanges; ended by Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a new Model with the given configuration. The transcript
// starts with the greeting; the chat session is only built on first send.
func NewModel(cfg *config.Config, catalog *storage.Catalog, sessions SessionSource, version, license string) *Model {
	transcript := NewTranscript(config.Greeting)

	concierge := NewConcierge(sessions, transcript, ConciergeOptions{
		Fallback: config.FallbackReply,
		Timeout:  cfg.RequestTimeout,
		Logger:   config.Log,
	})

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		ctx:        ctx,
		cancel:     cancel,
		Config:     cfg,
		Catalog:    catalog,
		Concierge:  concierge,
		Transcript: transcript,
		Category:   storage.CategoryAll,
		Version:    version,
		License:    license,
	}
}

// Busy reports whether a concierge exchange is in flight.
func (m *Model) Busy() bool {
	return m.Concierge.State() == StateAwaitingResponse
}

// TogglePanel opens or closes the concierge panel. Only visibility changes.
func (m *Model) TogglePanel() {
	m.PanelOpen = !m.PanelOpen
}

// Shutdown cancels any exchange in flight. An exchange whose updates are
// no longer read gives up delivering them and settles on its own.
func (m *Model) Shutdown() {
	m.cancel()
}

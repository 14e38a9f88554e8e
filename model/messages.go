package model

import "guadavillas/storage"

// ConciergeUpdateMsg carries one change of the assistant turn being
// streamed. The exchange is over when Update.Settled() is true.
type ConciergeUpdateMsg struct {
	Update  TurnUpdate
	updates <-chan TurnUpdate
}

type CatalogFilteredMsg struct {
	Category storage.Category
	Query    string
	Villas   []storage.Villa
	Err      error
}

type BookingConfirmedMsg struct {
	Request   BookingRequest
	Reference string
	Err       error
}

type BookingResetMsg struct {
	Reference string
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}

type ClipboardCopiedMsg struct {
	What string
	Err  error
}

// FlashTickMsg clears the status line flash numbered Seq.
type FlashTickMsg struct {
	Seq int
}

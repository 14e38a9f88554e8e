package ui

import (
	appmodel "guadavillas/model"
)

// Message type aliases - these are defined in the model package
type conciergeUpdateMsg = appmodel.ConciergeUpdateMsg
type catalogFilteredMsg = appmodel.CatalogFilteredMsg
type bookingConfirmedMsg = appmodel.BookingConfirmedMsg
type bookingResetMsg = appmodel.BookingResetMsg
type markdownRenderedMsg = appmodel.MarkdownRenderedMsg
type clipboardCopiedMsg = appmodel.ClipboardCopiedMsg
type flashTickMsg = appmodel.FlashTickMsg

// focusArea is the part of the screen receiving key presses.
type focusArea int

const (
	focusCatalog focusArea = iota
	focusSearch
	focusConcierge
)

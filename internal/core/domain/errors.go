package domain

import "errors"

var (
	// ErrUnknownSlot is returned for slot identifiers outside desktop/tablet/mobile
	ErrUnknownSlot = errors.New("unknown slot")

	// ErrFormClosed is returned when a discarded form receives a selection
	ErrFormClosed = errors.New("upload form has been discarded")
)

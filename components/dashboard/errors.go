package dashboard

import "errors"

var (
	// ErrStore wraps every settings store read or write failure.
	ErrStore = errors.New("dashboard: settings store failure")
	// ErrCorruptSettings is returned when a persisted blob cannot be decoded.
	ErrCorruptSettings = errors.New("dashboard: corrupt settings blob")
	// ErrIndexOutOfRange is returned by reorder operations given invalid indexes.
	ErrIndexOutOfRange = errors.New("dashboard: reorder index out of range")
	// ErrInvalidSize is returned when a widget is resized to an unknown size.
	ErrInvalidSize = errors.New("dashboard: invalid widget size")
	// ErrUnknownTable is returned when no column defaults exist for a table.
	ErrUnknownTable = errors.New("dashboard: unknown table")
	// ErrMissingViewer is returned when a viewer has no user id.
	ErrMissingViewer = errors.New("dashboard: viewer context missing user id")
	// ErrInvalidSettings is returned when submitted settings fail validation.
	ErrInvalidSettings = errors.New("dashboard: invalid settings")
)

package cubegame

import "errors"

// Sentinel errors for the cubegame package.
var (
	// Structural errors
	ErrInvalidSize = errors.New("cubegame: cube size must be between 2 and 7")
	ErrBusy        = errors.New("cubegame: a move is in flight or queued")

	// History errors
	ErrNoHistory = errors.New("cubegame: no recorded move to undo")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubegame: invalid move notation")
)

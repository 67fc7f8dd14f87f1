package game

// Director plays the game in place of a human. Both methods are called from
// the goroutine which owns the board.
type Director interface {
	// Initialize the director for a freshly created board
	Init(*Board)

	// Pick the next pointer event to apply, if any
	Act() (PointerEvent, bool)
}

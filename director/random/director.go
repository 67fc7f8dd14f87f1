package random

import (
	"math/rand"

	"github.com/trainer400/CampoMinato/game"
)

// Director primary-clicks hidden cells in a random order
type Director struct {
	Seed int64

	board *game.Board
	cells []*game.Cell
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.cells = board.Cells()

	rng := rand.New(rand.NewSource(director.Seed))
	rng.Shuffle(len(director.cells), func(i, j int) {
		director.cells[i], director.cells[j] = director.cells[j], director.cells[i]
	})
}

func (director *Director) Act() (game.PointerEvent, bool) {
	if director.board == nil {
		return game.PointerEvent{}, false
	}

	switch director.board.State() {
	case game.Won, game.Lost:
		return Acknowledge(director.board), true
	case game.Running:
	default:
		return game.PointerEvent{}, false
	}

	for _, cell := range director.cells {
		if cell.DisplayState().Kind == game.Hidden {
			return Click(cell, game.Primary), true
		}
	}
	return game.PointerEvent{}, false
}

func Click(cell *game.Cell, kind game.EventKind) game.PointerEvent {
	return game.PointerEvent{
		Pos:  cell.Bounds().Center(),
		Kind: kind,
	}
}

// Acknowledge builds the click which confirms a finished game
func Acknowledge(board *game.Board) game.PointerEvent {
	return game.PointerEvent{
		Pos:  board.Bounds().Center(),
		Kind: game.Primary,
	}
}

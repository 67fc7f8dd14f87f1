package game

import "fmt"

type CellKind int

const (
	Hidden CellKind = iota
	Flagged
	Empty
	Numbered
	Mine
	MineExploded
)

var cellKindNames = map[CellKind]string{
	Hidden:       "Hidden",
	Flagged:      "Flagged",
	Empty:        "Empty",
	Numbered:     "Numbered",
	Mine:         "Mine",
	MineExploded: "MineExploded",
}

func (kind CellKind) String() string {
	if name, ok := cellKindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("CellKind(%d)", int(kind))
}

// CellState is what a cell shows, or what it will show once revealed.
// Number is only meaningful for Numbered, and is always in 1..8.
type CellState struct {
	Kind   CellKind
	Number int
}

var (
	HiddenState       = CellState{Kind: Hidden}
	FlaggedState      = CellState{Kind: Flagged}
	EmptyState        = CellState{Kind: Empty}
	MineState         = CellState{Kind: Mine}
	MineExplodedState = CellState{Kind: MineExploded}
)

// NumberState returns the state of a free cell with n neighboring mines
func NumberState(n int) CellState {
	if n <= 0 {
		return EmptyState
	}
	return CellState{Kind: Numbered, Number: n}
}

// IsInteractive reports whether the cell can still be revealed or flagged
func (state CellState) IsInteractive() bool {
	return state.Kind == Hidden || state.Kind == Flagged
}

func (state CellState) IsMine() bool {
	return state.Kind == Mine || state.Kind == MineExploded
}

func (state CellState) String() string {
	if state.Kind == Numbered {
		return fmt.Sprintf("Numbered(%d)", state.Number)
	}
	return state.Kind.String()
}

type GameState int

const (
	Running GameState = iota
	Won
	Lost
	Stopped
)

func (state GameState) String() string {
	switch state {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("GameState(%d)", int(state))
	}
}

const (
	// Used whenever a non-positive board dimension is supplied
	fallbackDimension = 10
	// Chance that a drawn cell is left free of mines
	defaultMineProbability = 0.8
)

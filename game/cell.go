package game

import (
	"fmt"

	"github.com/faiface/pixel"
)

type Cell struct {
	board *Board

	col, row int
	bounds   pixel.Rect

	display   CellState
	trueState CellState
	isDirty   bool
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.col, cell.row)
}

func (cell *Cell) Col() int {
	return cell.col
}

func (cell *Cell) Row() int {
	return cell.row
}

// Bounds is the cell's area in window pixels
func (cell *Cell) Bounds() pixel.Rect {
	return cell.bounds
}

func (cell *Cell) DisplayState() CellState {
	return cell.display
}

func (cell *Cell) TrueState() CellState {
	return cell.trueState
}

func (cell *Cell) IsMine() bool {
	return cell.trueState.Kind == Mine
}

func (cell *Cell) IsDirty() bool {
	return cell.isDirty
}

func (cell *Cell) ClearDirty() {
	cell.isDirty = false
}

// Contains reports whether pos lies strictly inside the cell. Points on the
// border belong to no cell.
func (cell *Cell) Contains(pos pixel.Vec) bool {
	min, max := cell.bounds.Min, cell.bounds.Max
	return pos.X > min.X && pos.X < max.X && pos.Y > min.Y && pos.Y < max.Y
}

// SetDisplayState overwrites the shown state and marks the cell for redraw
func (cell *Cell) SetDisplayState(state CellState) {
	cell.display = state
	cell.isDirty = true
}

// Neighbors returns the up to 8 cells surrounding this one
func (cell *Cell) Neighbors() []*Cell {
	neighbors := make([]*Cell, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if neighbor := cell.board.CellAt(cell.col+dx, cell.row+dy); neighbor != nil {
				neighbors = append(neighbors, neighbor)
			}
		}
	}
	return neighbors
}

func (cell *Cell) countNeighbors(match func(*Cell) bool) int {
	count := 0
	for _, neighbor := range cell.Neighbors() {
		if match(neighbor) {
			count++
		}
	}
	return count
}

func (cell *Cell) numFlaggedNeighbors() int {
	return cell.countNeighbors(func(neighbor *Cell) bool {
		return neighbor.display.Kind == Flagged
	})
}

func (cell *Cell) numMineNeighbors() int {
	return cell.countNeighbors((*Cell).IsMine)
}

func (cell *Cell) toggleFlagged() {
	board := cell.board

	if cell.display.Kind == Flagged {
		cell.SetDisplayState(HiddenState)
		board.flagCount--
		if cell.IsMine() {
			board.flaggedMineCount--
			if board.state == Won {
				board.state = Running
				board.outcome = Running
				board.log.Info("flagged mine removed, game resumed")
			}
		}
	} else {
		cell.SetDisplayState(FlaggedState)
		board.flagCount++
		if cell.IsMine() {
			board.flaggedMineCount++
		}
		if board.flaggedMineCount == board.mineCount {
			board.win()
		}
	}

	board.cellLog(cell).WithField("flags", board.flagCount).Debug("flag toggled")
}

// chord reveals all hidden neighbors once at least as many neighbors are
// flagged as the cell's number. Flags are not checked for correctness.
func (cell *Cell) chord() {
	flagged := cell.numFlaggedNeighbors()
	log := cell.board.cellLog(cell).WithField("flagged", flagged)
	if flagged < cell.trueState.Number {
		log.Debug("chord unsatisfied")
		return
	}

	var hidden []*Cell
	for _, neighbor := range cell.Neighbors() {
		if neighbor.display.Kind == Hidden {
			hidden = append(hidden, neighbor)
		}
	}
	log.WithField("hidden", len(hidden)).Debug("chord")
	cell.board.reveal(hidden...)
}

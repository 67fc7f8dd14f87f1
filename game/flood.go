package game

import "github.com/gammazero/deque"

// reveal uncovers the given cells and keeps expanding through every Empty
// cell it uncovers. Cells leave Hidden at most once, so the worklist drains
// after at most one visit per cell. Expansion stops as soon as a mine goes off.
func (board *Board) reveal(cells ...*Cell) {
	var queue deque.Deque
	for _, cell := range cells {
		queue.PushBack(cell)
	}

	for queue.Len() > 0 && board.state != Lost {
		cell := queue.PopFront().(*Cell)
		if cell.display.Kind != Hidden {
			continue
		}

		switch cell.trueState.Kind {
		case Mine:
			cell.SetDisplayState(MineExplodedState)
			board.lose(cell)

		case Empty:
			cell.SetDisplayState(cell.trueState)
			for _, neighbor := range cell.Neighbors() {
				if neighbor.display.Kind == Hidden {
					queue.PushBack(neighbor)
				}
			}

		default:
			cell.SetDisplayState(cell.trueState)
		}
	}
}

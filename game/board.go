package game

import (
	"math"
	"math/rand"

	"github.com/faiface/pixel"
	"github.com/sirupsen/logrus"
)

type BoardConfig struct {
	Width, Height int // in number of cells
	CellSize      float64
	// Top-left corner of the grid, in window pixels
	Origin pixel.Vec

	// Chance that a cell is left free of mines when the board is drawn.
	// Values outside (0, 1) fall back to defaultMineProbability.
	MineProbability float64

	Seed int64
	// Overrides Seed when set
	Rand *rand.Rand

	// Fixed mine placement, indexed [row][col]. When set, every reset
	// reapplies it instead of drawing mines.
	Layout [][]bool

	// Called once when the player acknowledges a win or a loss
	OnGameEnd func(*Board, GameState)

	Logger logrus.FieldLogger
}

type Board struct {
	width, height int
	cellSize      float64
	origin        pixel.Vec
	probability   float64
	layout        [][]bool
	cells         [][]Cell

	state            GameState
	outcome          GameState
	mineCount        int
	flagCount        int
	flaggedMineCount int

	rand      *rand.Rand
	onGameEnd func(*Board, GameState)
	log       logrus.FieldLogger
}

// normalized applies the fallbacks for an unusable shape or mine probability
func (config BoardConfig) normalized() BoardConfig {
	if len(config.Layout) > 0 && len(config.Layout[0]) > 0 {
		config.Height = len(config.Layout)
		config.Width = len(config.Layout[0])
	} else {
		config.Layout = nil
	}
	if config.Width <= 0 {
		config.Width = fallbackDimension
	}
	if config.Height <= 0 {
		config.Height = fallbackDimension
	}
	if !(config.CellSize > 0) {
		config.CellSize = 1
	}
	if !(config.MineProbability > 0 && config.MineProbability < 1) {
		config.MineProbability = defaultMineProbability
	}
	return config
}

// Geometry is where a board built from config lies, without building it
func (config BoardConfig) Geometry() Geometry {
	config = config.normalized()
	return Geometry{
		Origin:   config.Origin,
		CellSize: config.CellSize,
		Width:    config.Width,
		Height:   config.Height,
	}
}

func NewBoard(config BoardConfig) *Board {
	config = config.normalized()
	board := &Board{
		width:       config.Width,
		height:      config.Height,
		cellSize:    config.CellSize,
		origin:      config.Origin,
		probability: config.MineProbability,
		layout:      config.Layout,
		rand:        config.Rand,
		onGameEnd:   config.OnGameEnd,
		log:         config.Logger,
	}

	if board.rand == nil {
		board.rand = rand.New(rand.NewSource(config.Seed))
	}
	if board.log == nil {
		board.log = logrus.StandardLogger()
	}

	board.cells = make([][]Cell, board.height)
	for y := range board.cells {
		row := make([]Cell, board.width)
		board.cells[y] = row

		for x := range row {
			cell := &row[x]
			cell.board = board
			cell.col, cell.row = x, y
			min := board.origin.Add(pixel.V(float64(x)*board.cellSize, float64(y)*board.cellSize))
			cell.bounds = pixel.R(min.X, min.Y, min.X+board.cellSize, min.Y+board.cellSize)
		}
	}

	board.generate()

	return board
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) CellSize() float64 {
	return board.cellSize
}

// Bounds is the area covered by the grid, in window pixels
func (board *Board) Bounds() pixel.Rect {
	return pixel.R(
		board.origin.X, board.origin.Y,
		board.origin.X+float64(board.width)*board.cellSize,
		board.origin.Y+float64(board.height)*board.cellSize,
	)
}

func (board *Board) CellAt(col, row int) *Cell {
	if col >= 0 && row >= 0 && col < board.width && row < board.height {
		return &board.cells[row][col]
	}
	return nil
}

// Cells returns every cell, row by row
func (board *Board) Cells() []*Cell {
	cells := make([]*Cell, 0, board.NumCells())
	for y := range board.cells {
		for x := range board.cells[y] {
			cells = append(cells, &board.cells[y][x])
		}
	}
	return cells
}

func (board *Board) State() GameState {
	return board.state
}

// Outcome is Won or Lost once a game has ended, even after the end was
// acknowledged; Running otherwise
func (board *Board) Outcome() GameState {
	return board.outcome
}

func (board *Board) MineCount() int {
	return board.mineCount
}

func (board *Board) FlagCount() int {
	return board.flagCount
}

// RemainingMines may go negative when more cells are flagged than there are
// mines
func (board *Board) RemainingMines() int {
	return board.mineCount - board.flagCount
}

func (board *Board) IsDirty() bool {
	for _, cell := range board.Cells() {
		if cell.isDirty {
			return true
		}
	}
	return false
}

// MarkDirty flags every cell for redraw
func (board *Board) MarkDirty() {
	for _, cell := range board.Cells() {
		cell.isDirty = true
	}
}

// Reset starts a new game in place, drawing a new mine layout
func (board *Board) Reset() {
	board.generate()
	board.log.WithFields(logrus.Fields{
		"mines": board.mineCount,
	}).Info("board reset")
}

// generate always starts the game Running, even on a board without mines
// where no flag has been placed yet. Won is only entered by placing a flag, so
// such a board is won by its first flag and never by revealing cells.
func (board *Board) generate() {
	board.state = Running
	board.outcome = Running
	board.mineCount = 0
	board.flagCount = 0
	board.flaggedMineCount = 0

	// Every mine must be placed before any cell is numbered
	for _, cell := range board.Cells() {
		var isMine bool
		if board.layout != nil {
			row := board.layout[cell.row]
			isMine = cell.col < len(row) && row[cell.col]
		} else {
			isMine = board.rand.Float64() >= board.probability
		}

		if isMine {
			cell.trueState = MineState
			board.mineCount++
		} else {
			cell.trueState = EmptyState
		}
		cell.SetDisplayState(HiddenState)
	}

	for _, cell := range board.Cells() {
		if !cell.IsMine() {
			cell.trueState = NumberState(cell.numMineNeighbors())
		}
	}
}

// HandlePointerEvent applies a click to the cell under the pointer. The first
// click after the game was won or lost only acknowledges the outcome and stops
// the board; a stopped board ignores everything until it is reset.
func (board *Board) HandlePointerEvent(event PointerEvent) {
	if board.state == Stopped || !event.Kind.IsClick() {
		return
	}

	if board.state == Won || board.state == Lost {
		board.acknowledge()
		return
	}

	if cell := board.cellContaining(event.Pos); cell != nil {
		board.act(cell, event.Kind)
	}
}

func (board *Board) Click(cell *Cell) {
	if board.canPlay() {
		board.act(cell, Primary)
	}
}

func (board *Board) RightClick(cell *Cell) {
	if board.canPlay() {
		board.act(cell, Secondary)
	}
}

func (board *Board) MiddleClick(cell *Cell) {
	if board.canPlay() {
		board.act(cell, Auxiliary)
	}
}

func (board *Board) canPlay() bool {
	return board.state == Running || board.state == Won
}

func (board *Board) act(cell *Cell, kind EventKind) {
	switch {
	case cell.display.IsInteractive():
		if kind != Primary {
			cell.toggleFlagged()
		} else if cell.display.Kind == Hidden {
			board.reveal(cell)
		}

	case cell.trueState.Kind == Numbered:
		cell.chord()
	}
}

func (board *Board) cellContaining(pos pixel.Vec) *Cell {
	col, row, ok := board.Geometry().CellAt(pos)
	if !ok {
		return nil
	}
	if cell := board.CellAt(col, row); cell != nil && cell.Contains(pos) {
		return cell
	}
	return nil
}

func (board *Board) win() {
	if board.state != Running {
		return
	}
	board.state = Won
	board.outcome = Won
	board.log.WithFields(logrus.Fields{
		"mines": board.mineCount,
		"flags": board.flagCount,
	}).Info("all mines flagged")
}

func (board *Board) lose(cell *Cell) {
	board.state = Lost
	board.outcome = Lost
	board.cellLog(cell).Info("mine revealed")
}

func (board *Board) acknowledge() {
	outcome := board.state
	if outcome == Lost {
		for _, cell := range board.Cells() {
			if cell.IsMine() && cell.display.Kind == Hidden {
				cell.SetDisplayState(MineState)
			}
		}
	}

	board.state = Stopped
	board.log.WithField("state", outcome).Info("game over acknowledged")

	if board.onGameEnd != nil {
		board.onGameEnd(board, outcome)
	}
}

func (board *Board) cellLog(cell *Cell) logrus.FieldLogger {
	return board.log.WithFields(logrus.Fields{
		"col":   cell.col,
		"row":   cell.row,
		"state": cell.display,
	})
}

// Geometry describes where the grid lies in window pixels. It is a value, so
// it can be handed to goroutines which do not own the board.
type Geometry struct {
	Origin        pixel.Vec
	CellSize      float64
	Width, Height int
}

func (board *Board) Geometry() Geometry {
	return Geometry{
		Origin:   board.origin,
		CellSize: board.cellSize,
		Width:    board.width,
		Height:   board.height,
	}
}

func (geometry Geometry) CellCenter(col, row int) pixel.Vec {
	return geometry.Origin.Add(pixel.V(
		(float64(col)+0.5)*geometry.CellSize,
		(float64(row)+0.5)*geometry.CellSize,
	))
}

// CellAt maps a window position onto grid coordinates. Positions outside the
// grid report ok == false.
func (geometry Geometry) CellAt(pos pixel.Vec) (col, row int, ok bool) {
	rel := pos.Sub(geometry.Origin)
	x := math.Floor(rel.X / geometry.CellSize)
	y := math.Floor(rel.Y / geometry.CellSize)
	if !(x >= 0 && y >= 0 && x < float64(geometry.Width) && y < float64(geometry.Height)) {
		return 0, 0, false
	}
	return int(x), int(y), true
}

package game

import (
	"context"
	"time"

	"github.com/faiface/pixel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Rows of cells reserved above the grid for the counters and the reset button
const headerCells = 3

type GameConfig struct {
	Width, Height   int
	CellSize        float64
	MineProbability float64

	Seed int64

	// Snapshot to load the mine layout from
	Snapshot *BoardSnapshot

	Director Director
	// Time between two director actions
	DirectorInterval time.Duration

	Logger logrus.FieldLogger
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:            10,
		Height:           10,
		CellSize:         32,
		MineProbability:  defaultMineProbability,
		DirectorInterval: 500 * time.Millisecond,
	}
}

func (config GameConfig) logger() logrus.FieldLogger {
	if config.Logger == nil {
		return logrus.StandardLogger()
	}
	return config.Logger
}

func (config GameConfig) boardConfig() (BoardConfig, error) {
	boardConfig := BoardConfig{
		Width:           config.Width,
		Height:          config.Height,
		CellSize:        config.CellSize,
		MineProbability: config.MineProbability,
		Seed:            config.Seed,
		OnGameEnd:       config.onGameEnd,
		Logger:          config.logger(),
	}
	if config.Snapshot != nil {
		if err := config.Snapshot.Configure(&boardConfig); err != nil {
			return boardConfig, errors.Wrap(err, "loading board snapshot")
		}
	}

	cellSize := boardConfig.CellSize
	if !(cellSize > 0) {
		cellSize = 1
	}
	boardConfig.Origin = pixel.V(0, headerCells*cellSize)
	return boardConfig, nil
}

// Geometry reports where the board described by the config will lie
func (config GameConfig) Geometry() (Geometry, error) {
	boardConfig, err := config.boardConfig()
	if err != nil {
		return Geometry{}, err
	}
	return boardConfig.Geometry(), nil
}

// NewController creates the board described by the config and its controller
func (config GameConfig) NewController() (*Controller, error) {
	boardConfig, err := config.boardConfig()
	if err != nil {
		return nil, err
	}

	board := NewBoard(boardConfig)
	controller := NewController(ControllerConfig{
		Board:  board,
		Logger: config.logger(),
	})

	window := board.Bounds()
	controller.Resize(window.Max.X, window.Max.Y)

	return controller, nil
}

func (config GameConfig) onGameEnd(board *Board, outcome GameState) {
	config.logger().WithFields(logrus.Fields{
		"state": outcome,
		"mines": board.MineCount(),
		"flags": board.FlagCount(),
	}).Info("game ended")
	config.logger().Debug(board.Snapshot(config.Seed).Serialize())
}

// Renderer draws the game. It is only called from the goroutine running Run.
type Renderer interface {
	Draw(*Controller) error
}

// Run owns the board until ctx is done: pointer events arrive through the
// mailbox, the configured director acts on every tick, and the renderer is
// called whenever something changed.
func Run(ctx context.Context, config GameConfig, mailbox *Mailbox, renderer Renderer) error {
	controller, err := config.NewController()
	if err != nil {
		return err
	}
	board := controller.Board()

	var tick <-chan time.Time
	if config.Director != nil {
		config.Director.Init(board)

		interval := config.DirectorInterval
		if interval <= 0 {
			interval = NewGameConfig().DirectorInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	draw := func() error {
		if err := renderer.Draw(controller); err != nil {
			return errors.Wrap(err, "drawing board")
		}
		for _, cell := range board.Cells() {
			cell.ClearDirty()
		}
		return nil
	}
	if err := draw(); err != nil {
		return err
	}

	for {
		var event PointerEvent

		select {
		case <-ctx.Done():
			return nil
		case pending := <-mailbox.slot:
			event = pending.open()
		case <-tick:
			var ok bool
			if event, ok = config.Director.Act(); !ok {
				continue
			}
		}

		state := board.State()
		controller.HandlePointerEvent(event)

		if board.IsDirty() || board.State() != state {
			if err := draw(); err != nil {
				return err
			}
		}
	}
}

package game

import (
	"time"

	"github.com/faiface/pixel"
	"github.com/sirupsen/logrus"
)

type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonPressed
)

// ResetButton latches a reset request when it is primary-clicked
type ResetButton struct {
	bounds pixel.Rect
	state  ButtonState
	reset  bool
}

func NewResetButton(bounds pixel.Rect) *ResetButton {
	if bounds.W() <= 0 || bounds.H() <= 0 {
		bounds = pixel.R(bounds.Min.X, bounds.Min.Y, bounds.Min.X+10, bounds.Min.Y+10)
	}
	return &ResetButton{bounds: bounds}
}

func (button *ResetButton) Bounds() pixel.Rect {
	return button.bounds
}

func (button *ResetButton) State() ButtonState {
	return button.state
}

func (button *ResetButton) Contains(pos pixel.Vec) bool {
	min, max := button.bounds.Min, button.bounds.Max
	return pos.X > min.X && pos.X < max.X && pos.Y > min.Y && pos.Y < max.Y
}

func (button *ResetButton) HandlePointerEvent(event PointerEvent) {
	switch {
	case event.Kind == Move && !button.Contains(event.Pos):
		button.state = ButtonNormal
	case event.Kind == Primary && button.Contains(event.Pos):
		button.state = ButtonPressed
		button.reset = true
	case event.Kind.IsRelease():
		button.state = ButtonNormal
	}
}

// ShouldReset reports a pending reset request, once
func (button *ResetButton) ShouldReset() bool {
	if button.reset {
		button.reset = false
		return true
	}
	return false
}

// Controller ties the board to the reset button, the game timer and the
// window size
type Controller struct {
	board  *Board
	button *ResetButton
	window pixel.Rect

	now     func() time.Time
	started time.Time

	log logrus.FieldLogger
}

type ControllerConfig struct {
	Board  *Board
	Button *ResetButton
	// Defaults to time.Now
	Clock  func() time.Time
	Logger logrus.FieldLogger
}

func NewController(config ControllerConfig) *Controller {
	controller := &Controller{
		board:  config.Board,
		button: config.Button,
		now:    config.Clock,
		log:    config.Logger,
	}
	if controller.now == nil {
		controller.now = time.Now
	}
	if controller.log == nil {
		controller.log = logrus.StandardLogger()
	}
	if controller.button == nil {
		controller.button = NewResetButton(ResetButtonBounds(config.Board))
	}
	controller.started = controller.now()
	return controller
}

// ResetButtonBounds centers a button two cells wide above the board
func ResetButtonBounds(board *Board) pixel.Rect {
	return board.Geometry().ResetButtonBounds()
}

func (geometry Geometry) ResetButtonBounds() pixel.Rect {
	size := geometry.CellSize
	x := geometry.Origin.X + float64(geometry.Width)*size/2 - size
	return pixel.R(x, size/2, x+2*size, size/2+2*size)
}

func (controller *Controller) Board() *Board {
	return controller.board
}

func (controller *Controller) Button() *ResetButton {
	return controller.button
}

func (controller *Controller) Window() pixel.Rect {
	return controller.window
}

func (controller *Controller) HandlePointerEvent(event PointerEvent) {
	controller.button.HandlePointerEvent(event)
	controller.board.HandlePointerEvent(event)

	if controller.button.ShouldReset() {
		controller.Reset()
	}
}

func (controller *Controller) Reset() {
	controller.board.Reset()
	controller.started = controller.now()
}

// Elapsed is the time since the last reset, in whole seconds
func (controller *Controller) Elapsed() time.Duration {
	return controller.now().Sub(controller.started).Truncate(time.Second)
}

func (controller *Controller) Resize(width, height float64) {
	controller.window = pixel.R(0, 0, width, height)
	controller.board.MarkDirty()
	controller.log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
	}).Debug("window resized")
}

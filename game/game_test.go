package game

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

// recordingRenderer passes the displayed rows of every frame to the test
type recordingRenderer struct {
	frames chan []string
	err    error
}

func (renderer *recordingRenderer) Draw(controller *Controller) error {
	renderer.frames <- displayRows(controller.Board())
	return renderer.err
}

// scriptedDirector plays its events in order, one per tick
type scriptedDirector struct {
	board  *Board
	events []PointerEvent
}

func (director *scriptedDirector) Init(board *Board) {
	director.board = board
}

func (director *scriptedDirector) Act() (PointerEvent, bool) {
	if len(director.events) == 0 {
		return PointerEvent{}, false
	}
	event := director.events[0]
	director.events = director.events[1:]
	return event, true
}

func nextFrame(frames <-chan []string) []string {
	select {
	case frame := <-frames:
		return frame
	case <-time.After(5 * time.Second):
		return nil
	}
}

func testGameConfig(rows string) GameConfig {
	config := NewGameConfig()
	config.CellSize = testCellSize
	config.Snapshot = &BoardSnapshot{SerializedBoard: rows}
	config.Logger = quietLogger()
	return config
}

func TestRun(t *testing.T) {
	Convey("Given a running game", t, func() {
		config := testGameConfig("*..\n...")
		geometry, err := config.Geometry()
		So(err, ShouldBeNil)
		So(geometry.Origin.Y, ShouldEqual, 3*testCellSize)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		renderer := &recordingRenderer{frames: make(chan []string, 8)}
		mailbox := NewMailbox()
		done := make(chan error, 1)

		Convey("Mailbox events are applied and drawn", func() {
			go func() { done <- Run(ctx, config, mailbox, renderer) }()

			So(nextFrame(renderer.frames), ShouldResemble, []string{"###", "###"})

			mailbox.Post(PointerEvent{Pos: geometry.CellCenter(2, 1), Kind: Primary})
			So(nextFrame(renderer.frames), ShouldResemble, []string{"#1.", "#1."})

			cancel()
			So(<-done, ShouldBeNil)
		})

		Convey("The director acts on every tick", func() {
			config.DirectorInterval = time.Millisecond
			config.Director = &scriptedDirector{events: []PointerEvent{
				{Pos: geometry.CellCenter(0, 0), Kind: Secondary},
			}}
			go func() { done <- Run(ctx, config, mailbox, renderer) }()

			So(nextFrame(renderer.frames), ShouldResemble, []string{"###", "###"})
			So(nextFrame(renderer.frames), ShouldResemble, []string{"F##", "###"})

			cancel()
			So(<-done, ShouldBeNil)
		})

		Convey("Renderer failures stop the game", func() {
			renderer.err = errors.New("no screen")
			err := Run(ctx, config, mailbox, renderer)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "drawing board: no screen")
		})
	})

	Convey("The geometry matches the board the game builds", t, func() {
		config := testGameConfig("*..\n...")
		geometry, err := config.Geometry()
		So(err, ShouldBeNil)

		controller, err := config.NewController()
		So(err, ShouldBeNil)
		So(geometry, ShouldResemble, controller.Board().Geometry())

		So(BoardConfig{Width: -1, CellSize: -5}.Geometry(), ShouldResemble, Geometry{
			CellSize: 1,
			Width:    fallbackDimension,
			Height:   fallbackDimension,
		})
	})

	Convey("A broken snapshot is reported", t, func() {
		config := testGameConfig("*.?")
		_, err := config.Geometry()
		So(err, ShouldNotBeNil)

		err = Run(context.Background(), config, NewMailbox(), &recordingRenderer{})
		So(err.Error(), ShouldStartWith, "loading board snapshot")
	})
}

package cmd

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/faiface/pixel"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/trainer400/CampoMinato/game"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func TestParseCommand(t *testing.T) {
	Convey("Given the geometry of a board", t, func() {
		geometry := game.Geometry{Origin: pixel.V(0, 30), CellSize: 10, Width: 4, Height: 3}

		Convey("Click commands target the middle of a cell", func() {
			events, err := parseCommand("l 2 1", geometry)
			So(err, ShouldBeNil)
			So(events, ShouldResemble, []game.PointerEvent{{Pos: pixel.V(25, 45), Kind: game.Primary}})

			events, err = parseCommand("  R 0 0 ", geometry)
			So(err, ShouldBeNil)
			So(events, ShouldResemble, []game.PointerEvent{{Pos: pixel.V(5, 35), Kind: game.Secondary}})

			events, err = parseCommand("m 3 2", geometry)
			So(err, ShouldBeNil)
			So(events[0].Kind, ShouldEqual, game.Auxiliary)
		})

		Convey("Reset presses and releases the reset button", func() {
			events, err := parseCommand("reset", geometry)
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 2)
			So(events[0].Pos, ShouldResemble, pixel.V(20, 15))
			So(events[0].Kind, ShouldEqual, game.Primary)
			So(events[1].Kind, ShouldEqual, game.PrimaryRelease)
		})

		Convey("Blank lines do nothing and q quits", func() {
			events, err := parseCommand("   ", geometry)
			So(err, ShouldBeNil)
			So(events, ShouldBeEmpty)

			_, err = parseCommand("q", geometry)
			So(err, ShouldEqual, errQuit)
			_, err = parseCommand("quit", geometry)
			So(err, ShouldEqual, errQuit)
		})

		Convey("Malformed commands are rejected", func() {
			for _, line := range []string{"x 1 1", "l 1", "l 1 2 3", "l a 1", "r 1 b"} {
				_, err := parseCommand(line, geometry)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestPumpInput(t *testing.T) {
	Convey("Given a mailbox drained by a game loop", t, func() {
		geometry := game.Geometry{CellSize: 10, Width: 3, Height: 3}
		mailbox := game.NewMailbox()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		received := make(chan game.PointerEvent, 16)
		go func() {
			for {
				event, err := mailbox.Next(ctx)
				if err != nil {
					return
				}
				received <- event
			}
		}()

		Convey("Every command arrives in order and bad lines are skipped", func() {
			in := strings.NewReader("l 0 0\nnope\nr 1 1\nm 2 2\n")
			quit, err := pumpInput(ctx, in, geometry, mailbox, quietLogger())
			So(err, ShouldBeNil)
			So(quit, ShouldBeFalse)

			So((<-received).Kind, ShouldEqual, game.Primary)
			So((<-received).Kind, ShouldEqual, game.Secondary)
			So((<-received).Kind, ShouldEqual, game.Auxiliary)
		})

		Convey("q stops reading", func() {
			in := strings.NewReader("q\nl 0 0\n")
			quit, err := pumpInput(ctx, in, geometry, mailbox, quietLogger())
			So(err, ShouldBeNil)
			So(quit, ShouldBeTrue)
			So(received, ShouldBeEmpty)
		})
	})
}

package cmd

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/trainer400/CampoMinato/game"
)

var errQuit = errors.New("quit")

var clickCommands = map[string]game.EventKind{
	"l": game.Primary,
	"r": game.Secondary,
	"m": game.Auxiliary,
}

// parseCommand turns one input line into the pointer events a mouse would
// have produced for it
func parseCommand(line string, geometry game.Geometry) ([]game.PointerEvent, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	switch name := strings.ToLower(fields[0]); name {
	case "q", "quit":
		return nil, errQuit

	case "reset":
		center := geometry.ResetButtonBounds().Center()
		return []game.PointerEvent{
			{Pos: center, Kind: game.Primary},
			{Pos: center, Kind: game.PrimaryRelease},
		}, nil

	default:
		kind, isClick := clickCommands[name]
		if !isClick {
			return nil, errors.Errorf("unknown command %q", name)
		}
		if len(fields) != 3 {
			return nil, errors.Errorf("usage: %s <col> <row>", name)
		}

		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(err, "parsing column")
		}
		row, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Wrap(err, "parsing row")
		}

		// Positions off the grid are still posted; the board ignores them
		return []game.PointerEvent{
			{Pos: geometry.CellCenter(col, row), Kind: kind},
		}, nil
	}
}

// pumpInput posts the events of every stdin command to the mailbox, until the
// input ends, "q" is read (quit) or ctx is done
func pumpInput(ctx context.Context, in io.Reader, geometry game.Geometry, mailbox *game.Mailbox, log logrus.FieldLogger) (quit bool, err error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return false, nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return false, errors.Wrap(err, "reading input")
				default:
					return false, nil
				}
			}

			events, err := parseCommand(line, geometry)
			if err == errQuit {
				return true, nil
			}
			if err != nil {
				log.WithError(err).Warn("ignoring input")
				continue
			}

			for _, event := range events {
				if !post(ctx, mailbox, event) {
					return false, nil
				}
			}
		}
	}
}

// post hands the event over and waits until the game loop picked it up, so
// that typed commands are never overwritten by the next one
func post(ctx context.Context, mailbox *game.Mailbox, event game.PointerEvent) bool {
	return mailbox.PostAndWait(ctx, event) == nil
}

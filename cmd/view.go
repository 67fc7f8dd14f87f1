package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/trainer400/CampoMinato/game"
)

var cellRunes = map[game.CellKind]rune{
	game.Hidden:       '#',
	game.Flagged:      'F',
	game.Empty:        '.',
	game.Mine:         '*',
	game.MineExploded: 'X',
}

func cellRune(state game.CellState) rune {
	if state.Kind == game.Numbered {
		return rune('0' + state.Number)
	}
	if r, ok := cellRunes[state.Kind]; ok {
		return r
	}
	return '?'
}

// textRenderer prints the whole board after every change
type textRenderer struct {
	out io.Writer
}

func (renderer *textRenderer) Draw(controller *game.Controller) error {
	_, err := io.WriteString(renderer.out, renderText(controller))
	return err
}

func renderText(controller *game.Controller) string {
	board := controller.Board()
	var text strings.Builder

	seconds := int(controller.Elapsed() / time.Second)
	if seconds > 999 {
		seconds = 999
	}
	fmt.Fprintf(&text, "%03d  %03d", board.RemainingMines(), seconds)

	switch board.Outcome() {
	case game.Won:
		text.WriteString("   WIN!")
	case game.Lost:
		text.WriteString("   LOSE :(")
	}
	text.WriteByte('\n')

	text.WriteString("   ")
	for col := 0; col < board.Width(); col++ {
		fmt.Fprintf(&text, "%d", col%10)
	}
	text.WriteByte('\n')

	for row := 0; row < board.Height(); row++ {
		fmt.Fprintf(&text, "%2d ", row)
		for col := 0; col < board.Width(); col++ {
			text.WriteRune(cellRune(board.CellAt(col, row).DisplayState()))
		}
		text.WriteByte('\n')
	}
	text.WriteByte('\n')

	return text.String()
}

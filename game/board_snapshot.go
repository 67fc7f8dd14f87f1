package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	snapshotMine = '*'
	snapshotFree = '.'
)

// BoardSnapshot is a mine layout, one line per row: '*' for a mine and '.'
// for a free cell
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board,flow"`
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

// Layout decodes the rows into a mine grid indexed [row][col]
func (snapshot *BoardSnapshot) Layout() ([][]bool, error) {
	rows := strings.Split(strings.TrimSpace(snapshot.SerializedBoard), "\n")
	if len(rows) == 0 || len(strings.TrimSpace(rows[0])) == 0 {
		return nil, errors.New("board layout is empty")
	}

	layout := make([][]bool, len(rows))
	width := len(strings.TrimSpace(rows[0]))
	for y, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != width {
			return nil, errors.Errorf("row %d has %d cells, expected %d", y, len(row), width)
		}

		layout[y] = make([]bool, width)
		for x, c := range row {
			switch c {
			case snapshotMine:
				layout[y][x] = true
			case snapshotFree:
			default:
				return nil, errors.Errorf("unknown cell %q at (%d, %d)", c, x, y)
			}
		}
	}

	return layout, nil
}

// Configure fills config with the snapshot's layout, and its seed unless
// that is zero
func (snapshot *BoardSnapshot) Configure(config *BoardConfig) error {
	layout, err := snapshot.Layout()
	if err != nil {
		return err
	}

	config.Layout = layout
	config.Height = len(layout)
	config.Width = len(layout[0])
	if snapshot.Seed != 0 {
		config.Seed = snapshot.Seed
	}
	return nil
}

func (board *Board) Snapshot(seed int64) *BoardSnapshot {
	var rows strings.Builder
	for y := range board.cells {
		if y > 0 {
			rows.WriteByte('\n')
		}
		for x := range board.cells[y] {
			if board.cells[y][x].IsMine() {
				rows.WriteByte(snapshotMine)
			} else {
				rows.WriteByte(snapshotFree)
			}
		}
	}

	return &BoardSnapshot{
		Seed:            seed,
		SerializedBoard: rows.String(),
	}
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parsing board snapshot")
	}
	return &snapshot, nil
}

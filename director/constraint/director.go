package constraint

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/trainer400/CampoMinato/director/random"
	"github.com/trainer400/CampoMinato/game"
	"github.com/trainer400/CampoMinato/util/collections"
)

// Director plays provable moves first. Otherwise it guesses among the
// frontier cells least likely to hold a mine, and clicks a random hidden
// cell when there is no frontier at all.
type Director struct {
	Seed   int64
	Logger logrus.FieldLogger

	board    *game.Board
	rng      *rand.Rand
	fallback random.Director
}

// Observation states that exactly numMines of cells are mines. Derived
// observations have no origin.
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[*game.Cell]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range sortedCells(observation.cells) {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(fmt.Sprintf("(%d, %d)", cell.Col(), cell.Row()))
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = fmt.Sprintf("(%d, %d)", observation.origin.Col(), observation.origin.Row())
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.rng = rand.New(rand.NewSource(director.Seed))
	director.fallback = random.Director{Seed: director.Seed}
	director.fallback.Init(board)
	if director.Logger == nil {
		director.Logger = logrus.StandardLogger()
	}
}

func (director *Director) Act() (game.PointerEvent, bool) {
	if director.board == nil {
		return game.PointerEvent{}, false
	}

	switch director.board.State() {
	case game.Won, game.Lost:
		return random.Acknowledge(director.board), true
	case game.Running:
	default:
		return game.PointerEvent{}, false
	}

	observations := director.observe()
	if event, ok := director.actDeliberate(observations); ok {
		return event, true
	}
	if event, ok := director.actLowestProbability(observations); ok {
		return event, true
	}
	return director.fallback.Act()
}

func (director *Director) actDeliberate(observations []*Observation) (game.PointerEvent, bool) {
	for _, observation := range observations {
		if observation.numMines <= 0 {
			// Every mine around the origin is flagged
			director.logDeduction(observation, "chord")
			return random.Click(observation.origin, game.Auxiliary), true
		}
		if observation.numMines == len(observation.cells) {
			director.logDeduction(observation, "flag")
			return random.Click(sortedCells(observation.cells)[0], game.Secondary), true
		}
	}

	for _, observation := range derive(observations) {
		switch observation.numMines {
		case 0:
			director.logDeduction(observation, "reveal")
			return random.Click(sortedCells(observation.cells)[0], game.Primary), true
		case len(observation.cells):
			director.logDeduction(observation, "flag")
			return random.Click(sortedCells(observation.cells)[0], game.Secondary), true
		}
	}

	return game.PointerEvent{}, false
}

// actLowestProbability clicks one of the frontier cells whose worst
// observation gives the lowest chance of a mine
func (director *Director) actLowestProbability(observations []*Observation) (game.PointerEvent, bool) {
	cellProbabilities := make(map[*game.Cell]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if past, seen := cellProbabilities[cell]; !seen || probability > past {
				cellProbabilities[cell] = probability
			}
		}
	}
	if len(cellProbabilities) == 0 {
		return game.PointerEvent{}, false
	}

	lowestProbability := 1.0
	for _, probability := range cellProbabilities {
		if probability < lowestProbability {
			lowestProbability = probability
		}
	}

	candidates := make(collections.Set[*game.Cell])
	for cell, probability := range cellProbabilities {
		if probability == lowestProbability {
			candidates.Add(cell)
		}
	}

	lowest := sortedCells(candidates)
	cell := lowest[director.rng.Intn(len(lowest))]
	director.Logger.WithFields(logrus.Fields{
		"col":         cell.Col(),
		"row":         cell.Row(),
		"probability": lowestProbability,
		"candidates":  len(lowest),
	}).Debug("guessing least likely mine")
	return random.Click(cell, game.Primary), true
}

func (director *Director) logDeduction(observation *Observation, move string) {
	director.Logger.WithField("observation", observation.String()).Debug(move)
}

// observe builds one observation per revealed number that still borders
// hidden cells
func (director *Director) observe() []*Observation {
	var observations []*Observation

	for _, cell := range director.board.Cells() {
		state := cell.DisplayState()
		if state.Kind != game.Numbered {
			continue
		}

		observation := &Observation{
			origin:   cell,
			numMines: state.Number,
			cells:    collections.Of[*game.Cell](),
		}
		for _, neighbor := range cell.Neighbors() {
			switch neighbor.DisplayState().Kind {
			case game.Flagged:
				observation.numMines--
			case game.Hidden:
				observation.cells.Add(neighbor)
			}
		}

		if len(observation.cells) > 0 {
			observations = append(observations, observation)
		}
	}

	return observations
}

// derive combines every overlapping pair of observations. When one is a strict
// subset of the other, the rest of the larger one holds the difference of their
// mines. When a single mine lies among the cells of one observation, at most one
// mine is shared, so if the other's mines can only fit by filling all of its
// unshared cells, those are occluded mines.
func derive(observations []*Observation) []*Observation {
	var derived []*Observation

	for _, observation := range observations {
		for _, other := range observations {
			if observation == other {
				continue
			}

			shared := observation.cells.Intersection(other.cells)
			if len(shared) == 0 || observation.cells.Equal(other.cells) {
				continue
			}

			if observation.cells.IsSubset(other.cells) {
				derived = append(derived, &Observation{
					numMines: other.numMines - observation.numMines,
					cells:    other.cells.Difference(observation.cells),
				})
			} else if observation.numMines == 1 && len(shared) > 1 {
				otherOnly := other.cells.Difference(shared)
				occludedMines := other.numMines - observation.numMines
				if len(otherOnly) > 0 && occludedMines == len(otherOnly) {
					derived = append(derived, &Observation{
						numMines: occludedMines,
						cells:    otherOnly,
					})
				}
			}
		}
	}

	return derived
}

func sortedCells(cells collections.Set[*game.Cell]) []*game.Cell {
	sorted := make([]*game.Cell, 0, len(cells))
	for cell := range cells {
		sorted = append(sorted, cell)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row() != sorted[j].Row() {
			return sorted[i].Row() < sorted[j].Row()
		}
		return sorted[i].Col() < sorted[j].Col()
	})
	return sorted
}

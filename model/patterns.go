package model

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Some well-known patterns, rows[y][x]
var (
	Glider = [][]Cell{
		{Dead, Alive, Dead},
		{Dead, Dead, Alive},
		{Alive, Alive, Alive},
	}
	Blinker = [][]Cell{
		{Alive, Alive, Alive},
	}
	Block = [][]Cell{
		{Alive, Alive},
		{Alive, Alive},
	}
)

// Stamp copies pattern onto grid with its top-left corner at (startX, startY).
// The whole pattern must fit; nothing is written otherwise.
func Stamp(grid *Grid, startX, startY int, pattern [][]Cell) error {
	for y, row := range pattern {
		if len(row) == 0 {
			continue
		}
		if !grid.InBounds(startX, startY+y) || !grid.InBounds(startX+len(row)-1, startY+y) {
			return errors.Wrapf(ErrOutOfRange, "[Stamp] pattern row %d at (%d, %d) does not fit %dx%d grid",
				y, startX, startY+y, grid.width, grid.height)
		}
		for x, c := range row {
			if !c.Valid() {
				return errors.Wrapf(ErrInvalidCell, "[Stamp] pattern cell (%d, %d) has state %d", x, y, c)
			}
		}
	}
	for y, row := range pattern {
		for x, c := range row {
			grid.Set(startX+x, startY+y, c)
		}
	}
	return nil
}

// Randomize brings each cell to life independently with probability density
func Randomize(grid *Grid, rng *rand.Rand, density float64) {
	for i := range grid.cells {
		grid.cells[i] = CellFromBool(rng.Float64() < density)
	}
}

// InjectRandomLife revives count random cells
func InjectRandomLife(board CellWriter, rng *rand.Rand, count int) {
	for range count {
		board.Set(rng.Intn(board.GetWidth()), rng.Intn(board.GetHeight()), Alive)
	}
}

// SeedInterestingPatterns clears the grid, sprinkles random life and places
// gliders and blinkers where the grid is large enough to hold them
func SeedInterestingPatterns(grid *Grid, rng *rand.Rand, density float64) error {
	Randomize(grid, rng, density)

	if grid.width < 10 || grid.height < 10 {
		return nil
	}

	type placement struct {
		x, y    int
		pattern [][]Cell
	}
	placements := []placement{{5, 5, Glider}}
	if grid.width >= 20 && grid.height >= 15 {
		placements = append(placements, placement{grid.width - 8, 5, Glider})
	}
	placements = append(placements, placement{grid.width / 4, grid.height / 4, Blinker})
	if grid.width >= 30 {
		placements = append(placements, placement{3 * grid.width / 4, 3 * grid.height / 4, Blinker})
	}

	for _, p := range placements {
		if err := Stamp(grid, p.x, p.y, p.pattern); err != nil {
			return errors.Wrap(err, "[SeedInterestingPatterns]")
		}
	}
	return nil
}

package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// Cell is the state of one grid position
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

const (
	aliveRune = 'A'
	deadRune  = 'D'
)

// CellFromBool maps true to Alive and false to Dead
func CellFromBool(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}

// Valid reports whether c is one of the two states
func (c Cell) Valid() bool { return c == Dead || c == Alive }

// IsAlive reports whether the cell is Alive
func (c Cell) IsAlive() bool { return c == Alive }

// Rune returns the diagnostic character for the cell
func (c Cell) Rune() rune {
	if c == Alive {
		return aliveRune
	}
	return deadRune
}

func (c Cell) String() string { return string(c.Rune()) }

// ParseCell is the inverse of Rune
func ParseCell(r rune) (Cell, error) {
	switch r {
	case aliveRune:
		return Alive, nil
	case deadRune:
		return Dead, nil
	}
	return Dead, errors.Wrapf(ErrMalformedPattern, "[ParseCell] unknown cell %q", r)
}

// NextState applies the canonical Conway rule to a single cell
func NextState(c Cell, liveNeighbors int) Cell {
	return CellFromBool(rules.ApplyConwayRules(liveNeighbors, c.IsAlive()))
}

package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// Game is the automaton engine. It owns exactly one grid and replaces it
// wholesale on every Step. It is not safe for concurrent use.
type Game struct {
	grid       *Grid
	rule       rules.Rule
	pool       *GridPool
	generation int
}

// Option configures a Game
type Option func(*Game)

// WithRule swaps the transition rule; the default is rules.Conway
func WithRule(rule rules.Rule) Option {
	return func(g *Game) { g.rule = rule }
}

// WithPool recycles the previous generation's grid through pool
func WithPool(pool *GridPool) Option {
	return func(g *Game) { g.pool = pool }
}

// NewGame creates an engine over an all-Dead grid
func NewGame(width, height int, opts ...Option) (*Game, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "[NewGame]")
	}
	return newGame(grid, opts), nil
}

// NewGameFromCells creates an engine from a full rows[y][x] assignment
func NewGameFromCells(rows [][]Cell, opts ...Option) (*Game, error) {
	grid, err := FromCells(rows)
	if err != nil {
		return nil, errors.Wrap(err, "[NewGameFromCells]")
	}
	return newGame(grid, opts), nil
}

// NewGameFromGrid creates an engine seeded with a copy of grid
func NewGameFromGrid(grid *Grid, opts ...Option) *Game {
	return newGame(grid.Clone(), opts)
}

func newGame(grid *Grid, opts []Option) *Game {
	g := &Game{grid: grid, rule: rules.Conway}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GetWidth returns the width of the board
func (g *Game) GetWidth() int { return g.grid.width }

// GetHeight returns the height of the board
func (g *Game) GetHeight() int { return g.grid.height }

// Get returns the state at (x, y); see Grid.Get
func (g *Game) Get(x, y int) Cell { return g.grid.Get(x, y) }

// Set seeds the state at (x, y); see Grid.Set
func (g *Game) Set(x, y int, c Cell) { g.grid.Set(x, y, c) }

// Lookup returns the state at (x, y) or ErrOutOfRange
func (g *Game) Lookup(x, y int) (Cell, error) { return g.grid.Lookup(x, y) }

// Store seeds the state at (x, y) or returns ErrOutOfRange
func (g *Game) Store(x, y int, c Cell) error { return g.grid.Store(x, y, c) }

// CountLiveNeighbors counts live neighbors of (x, y) in the current generation
func (g *Game) CountLiveNeighbors(x, y int) int { return g.grid.CountLiveNeighbors(x, y) }

// CountLivingCells returns the current population
func (g *Game) CountLivingCells() int { return g.grid.CountLivingCells() }

// Generation returns the number of steps taken since construction
func (g *Game) Generation() int { return g.generation }

// Rule returns the transition rule in use
func (g *Game) Rule() rules.Rule { return g.rule }

// Grid returns a snapshot of the current generation
func (g *Game) Grid() *Grid { return g.grid.Clone() }

// Step advances the board by one generation
func (g *Game) Step() {
	next := g.grid.NextGeneration(g.rule, g.pool)
	prev := g.grid
	g.grid = next
	GridToPool(prev, g.pool)
	g.generation++
}

// Load replaces the board with a copy of grid and restarts the generation count
func (g *Game) Load(grid *Grid) error {
	if grid.width != g.grid.width || grid.height != g.grid.height {
		return errors.Wrapf(ErrInvalidDimensions, "[Load] %dx%d board into %dx%d game",
			grid.width, grid.height, g.grid.width, g.grid.height)
	}
	copy(g.grid.cells, grid.cells)
	g.generation = 0
	return nil
}

// Equal reports whether both engines hold the same board
func (g *Game) Equal(other *Game) bool {
	if other == nil {
		return false
	}
	return g.grid.Equal(other.grid)
}

func (g *Game) String() string { return g.grid.String() }

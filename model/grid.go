package model

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

var (
	// ErrOutOfRange is the coordinate contract violation: x outside [0, W) or y outside [0, H)
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidDimensions is returned for grids narrower or shorter than one cell, or ragged input
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrMalformedPattern is returned when textual board input cannot be read
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrInvalidCell is returned for a Cell that is neither Alive nor Dead
	ErrInvalidCell = errors.New("invalid cell state")
)

// CellReader is the read-only view handed to renderers
type CellReader interface {
	GetWidth() int
	GetHeight() int
	Get(x, y int) Cell
}

// CellWriter is a CellReader that can also be seeded
type CellWriter interface {
	CellReader
	Set(x, y int, c Cell)
}

// Grid is a fixed-size board of cells stored row-major at y*width+x
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an all-Dead grid with the specified dimensions
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// MustNewGrid is like NewGrid but panics on invalid dimensions
func MustNewGrid(width, height int) *Grid {
	g, err := NewGrid(width, height)
	if err != nil {
		panic(err)
	}
	return g
}

// FromCells builds a grid from a full assignment indexed rows[y][x].
// Every row must have the same, non-zero length.
func FromCells(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "[FromCells] no rows")
	}
	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, errors.Wrap(err, "[FromCells]")
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, errors.Wrapf(ErrInvalidDimensions,
				"[FromCells] row %d has %d cells, want %d", y, len(row), g.width)
		}
		for x, c := range row {
			if !c.Valid() {
				return nil, errors.Wrapf(ErrInvalidCell, "[FromCells] cell (%d, %d) has state %d", x, y, c)
			}
		}
		copy(g.cells[y*g.width:], row)
	}
	return g, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) rangeError(op string, x, y int) error {
	return errors.Wrapf(ErrOutOfRange, "[%s] (%d, %d) outside %dx%d grid", op, x, y, g.width, g.height)
}

func (g *Grid) checkWrite(op string, x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return g.rangeError(op, x, y)
	}
	if !c.Valid() {
		return errors.Wrapf(ErrInvalidCell, "[%s] state %d at (%d, %d)", op, c, x, y)
	}
	return nil
}

// Get returns the state of a cell. It panics if (x, y) is out of range.
func (g *Grid) Get(x, y int) Cell {
	if !g.InBounds(x, y) {
		panic(g.rangeError("Get", x, y))
	}
	return g.cells[y*g.width+x]
}

// Set overwrites a cell. It panics if (x, y) is out of range or c is not a valid state.
func (g *Grid) Set(x, y int, c Cell) {
	if err := g.checkWrite("Set", x, y, c); err != nil {
		panic(err)
	}
	g.cells[y*g.width+x] = c
}

// Lookup is Get returning ErrOutOfRange instead of panicking
func (g *Grid) Lookup(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Dead, g.rangeError("Lookup", x, y)
	}
	return g.cells[y*g.width+x], nil
}

// Store is Set returning ErrOutOfRange or ErrInvalidCell instead of panicking
func (g *Grid) Store(x, y int, c Cell) error {
	if err := g.checkWrite("Store", x, y, c); err != nil {
		return err
	}
	g.cells[y*g.width+x] = c
	return nil
}

// Reset resizes the grid and kills every cell
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height
	if cap(g.cells) < width*height {
		g.cells = make([]Cell, width*height)
		return
	}
	g.cells = g.cells[:width*height]
	g.Clear()
}

// Clear kills every cell
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

// Clone returns a copy that shares no storage with g
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Equal reports whether both grids have the same dimensions and every coordinate holds the same state
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// CountLiveNeighbors counts the live cells in the Moore neighborhood of (x, y).
// Neighbors past the edge do not exist; there is no wraparound.
func (g *Grid) CountLiveNeighbors(x, y int) int {
	if !g.InBounds(x, y) {
		panic(g.rangeError("CountLiveNeighbors", x, y))
	}

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	count := 0
	for ny := minY; ny <= maxY; ny++ {
		row := g.cells[ny*g.width : (ny+1)*g.width]
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if row[nx] == Alive {
				count++
			}
		}
	}
	return count
}

// NextGeneration builds the following generation under rule. The receiver is
// only read, so every cell sees the same snapshot. If pool is non-nil the
// result is drawn from it.
func (g *Grid) NextGeneration(rule rules.Rule, pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.width, g.height)
	} else {
		next = MustNewGrid(g.width, g.height)
	}

	for y := range g.height {
		for x := range g.width {
			alive := g.cells[y*g.width+x] == Alive
			if rule.Next(alive, g.CountLiveNeighbors(x, y)) {
				next.cells[y*g.width+x] = Alive
			}
		}
	}
	return next
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		if c == Alive {
			count++
		}
	}
	return
}

// Hash returns an MD5 digest of the dimensions and cell states
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.width, g.height)
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String dumps the grid one row per line, one A/D character per cell
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := range g.height {
		for x := range g.width {
			sb.WriteRune(g.cells[y*g.width+x].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

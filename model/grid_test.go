package model

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// board builds a grid from A/D rows
func board(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := ParseGrid(strings.NewReader(strings.Join(rows, "\n")))
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	return g
}

func filled(t *testing.T, width, height int, c Cell) *Grid {
	t.Helper()
	g := MustNewGrid(width, height)
	for y := range height {
		for x := range width {
			g.Set(x, y, c)
		}
	}
	return g
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want %v", r, target)
		}
	}()
	fn()
}

func TestNewGridAllDead(t *testing.T) {
	g, err := NewGrid(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if g.GetWidth() != 4 || g.GetHeight() != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", g.GetWidth(), g.GetHeight())
	}
	for y := range 3 {
		for x := range 4 {
			if g.Get(x, y) != Dead {
				t.Fatalf("cell (%d,%d) = %v, want D", x, y, g.Get(x, y))
			}
		}
	}
}

func TestNewGridInvalidDimensions(t *testing.T) {
	for _, dim := range [][2]int{{0, 1}, {1, 0}, {-1, 5}, {0, 0}} {
		if _, err := NewGrid(dim[0], dim[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewGrid(%d, %d) error = %v, want ErrInvalidDimensions", dim[0], dim[1], err)
		}
	}
}

func TestFromCells(t *testing.T) {
	g, err := FromCells([][]Cell{
		{Dead, Alive, Dead},
		{Alive, Dead, Dead},
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.GetWidth() != 3 || g.GetHeight() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", g.GetWidth(), g.GetHeight())
	}
	// x is the column, y is the row
	if g.Get(1, 0) != Alive || g.Get(0, 1) != Alive || g.Get(0, 0) != Dead {
		t.Errorf("unexpected board:\n%s", g)
	}
}

func TestFromCellsRejectsPartialAssignment(t *testing.T) {
	tests := map[string][][]Cell{
		"no rows":    nil,
		"empty row":  {{}},
		"ragged row": {{Dead, Dead}, {Dead}},
	}
	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := FromCells(rows); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("error = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestOutOfRangeAccessFailsFast(t *testing.T) {
	g := MustNewGrid(3, 2)
	coords := [][2]int{{3, 0}, {0, 2}, {-1, 0}, {0, -1}, {10, 10}}
	for _, c := range coords {
		x, y := c[0], c[1]
		expectPanic(t, ErrOutOfRange, func() { g.Get(x, y) })
		expectPanic(t, ErrOutOfRange, func() { g.Set(x, y, Alive) })
		expectPanic(t, ErrOutOfRange, func() { g.CountLiveNeighbors(x, y) })
		if _, err := g.Lookup(x, y); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Lookup(%d, %d) error = %v, want ErrOutOfRange", x, y, err)
		}
		if err := g.Store(x, y, Alive); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Store(%d, %d) error = %v, want ErrOutOfRange", x, y, err)
		}
	}
	if g.CountLivingCells() != 0 {
		t.Errorf("out-of-range writes leaked into the board:\n%s", g)
	}
}

func TestWritesRejectInvalidCell(t *testing.T) {
	bogus := Cell(7)
	g := MustNewGrid(2, 1)
	expectPanic(t, ErrInvalidCell, func() { g.Set(0, 0, bogus) })
	if err := g.Store(1, 0, bogus); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Store error = %v, want ErrInvalidCell", err)
	}
	if !g.Equal(MustNewGrid(2, 1)) {
		t.Errorf("rejected writes changed the board:\n%s", g)
	}
	if _, err := FromCells([][]Cell{{Dead, bogus}}); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("FromCells error = %v, want ErrInvalidCell", err)
	}
	if err := Stamp(g, 0, 0, [][]Cell{{Alive, bogus}}); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Stamp error = %v, want ErrInvalidCell", err)
	}
	if g.CountLivingCells() != 0 {
		t.Errorf("rejected stamp wrote cells:\n%s", g)
	}
	if bogus.Valid() || !Alive.Valid() || !Dead.Valid() {
		t.Error("Valid mapping is wrong")
	}
}

func TestSetAndGet(t *testing.T) {
	g := MustNewGrid(2, 2)
	g.Set(1, 0, Alive)
	if err := g.Store(0, 1, Alive); err != nil {
		t.Fatal(err)
	}
	if got := g.String(); got != "DA\nAD\n" {
		t.Errorf("String() = %q", got)
	}
	c, err := g.Lookup(1, 0)
	if err != nil || c != Alive {
		t.Errorf("Lookup(1, 0) = %v, %v", c, err)
	}
}

func TestEqual(t *testing.T) {
	a := board(t, "DAD", "DAD")
	b := board(t, "DAD", "DAD")
	if !a.Equal(b) {
		t.Error("identical boards should be equal")
	}
	b.Set(2, 1, Alive)
	if a.Equal(b) {
		t.Error("boards differing at one cell should not be equal")
	}
	if a.Equal(board(t, "DA", "DA", "DD")) {
		t.Error("boards of different dimensions should not be equal")
	}
	if a.Equal(nil) {
		t.Error("board should not equal nil")
	}
}

func TestCloneSharesNoStorage(t *testing.T) {
	a := board(t, "DD", "DD")
	b := a.Clone()
	b.Set(0, 0, Alive)
	if a.Get(0, 0) != Dead {
		t.Error("mutating a clone changed the original")
	}
}

func TestCountLiveNeighborsBoundaries(t *testing.T) {
	g := filled(t, 5, 4, Alive)
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"top-left corner", 0, 0, 3},
		{"top-right corner", 4, 0, 3},
		{"bottom-left corner", 0, 3, 3},
		{"bottom-right corner", 4, 3, 3},
		{"top edge", 2, 0, 5},
		{"bottom edge", 1, 3, 5},
		{"left edge", 0, 2, 5},
		{"right edge", 4, 1, 5},
		{"interior", 2, 2, 8},
		{"interior", 1, 1, 8},
	}
	for _, tt := range tests {
		if got := g.CountLiveNeighbors(tt.x, tt.y); got != tt.want {
			t.Errorf("%s (%d,%d) = %d, want %d", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCountLiveNeighborsExcludesSelfAndDoesNotWrap(t *testing.T) {
	g := board(t,
		"ADDDA",
		"DDDDD",
		"ADDDA",
	)
	if got := g.CountLiveNeighbors(0, 0); got != 0 {
		t.Errorf("corner with opposite-corner life = %d, want 0 (no wraparound)", got)
	}
	if got := g.CountLiveNeighbors(0, 1); got != 2 {
		t.Errorf("left edge between two live corners = %d, want 2", got)
	}
	single := board(t, "A")
	if got := single.CountLiveNeighbors(0, 0); got != 0 {
		t.Errorf("1x1 grid neighbors = %d, want 0", got)
	}
}

func TestNextGenerationLeavesSourceUntouched(t *testing.T) {
	g := board(t, "DAD", "DAD", "DAD")
	before := g.Clone()
	next := g.NextGeneration(rules.Conway, nil)
	if !g.Equal(before) {
		t.Error("NextGeneration mutated its receiver")
	}
	if !next.Equal(board(t, "DDD", "AAA", "DDD")) {
		t.Errorf("next generation:\n%s", next)
	}
}

func TestNextGenerationWithPool(t *testing.T) {
	pool := NewGridPool()
	stale := filled(t, 3, 3, Alive)
	pool.Put(stale)

	g := board(t, "DDD", "DDD", "DDD")
	next := g.NextGeneration(rules.Conway, pool)
	if next.CountLivingCells() != 0 {
		t.Errorf("pooled grid kept stale cells:\n%s", next)
	}
}

func TestHash(t *testing.T) {
	a := board(t, "DA", "AD")
	if a.Hash() != board(t, "DA", "AD").Hash() {
		t.Error("equal boards should hash the same")
	}
	if a.Hash() == board(t, "AD", "DA").Hash() {
		t.Error("different boards should hash differently")
	}
	if board(t, "DDDD").Hash() == board(t, "DD", "DD").Hash() {
		t.Error("different dimensions should hash differently")
	}
}

func TestCountLivingCells(t *testing.T) {
	if got := board(t, "AAD", "DAD").CountLivingCells(); got != 3 {
		t.Errorf("CountLivingCells() = %d, want 3", got)
	}
}

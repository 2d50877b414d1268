package model

// DefaultHistoryDepth is how many recent generations a CycleDetector remembers
const DefaultHistoryDepth = 5

// CycleDetector remembers the hashes of recent generations to spot still
// lifes and short oscillators
type CycleDetector struct {
	depth  int
	hashes []string
}

// NewCycleDetector remembers up to depth generations; depth < 1 uses DefaultHistoryDepth
func NewCycleDetector(depth int) *CycleDetector {
	if depth < 1 {
		depth = DefaultHistoryDepth
	}
	return &CycleDetector{depth: depth}
}

// Observe records the board and returns the period of the cycle it closes,
// or 0 if it matches none of the remembered generations
func (d *CycleDetector) Observe(board *Grid) (period int) {
	hash := board.Hash()
	for i := len(d.hashes) - 1; i >= 0; i-- {
		if d.hashes[i] == hash {
			period = len(d.hashes) - i
			break
		}
	}

	d.hashes = append(d.hashes, hash)
	if len(d.hashes) > d.depth {
		d.hashes = d.hashes[1:]
	}
	return period
}

// Reset forgets every remembered generation
func (d *CycleDetector) Reset() {
	d.hashes = nil
}

package rules

import (
	"strings"

	"github.com/pkg/errors"
)

const maxNeighbors = 8

// ErrInvalidRule is returned when a rule string is not in B/S notation
var ErrInvalidRule = errors.New("invalid rule")

// Rule is a Life-like transition rule: the neighbor counts on which a dead
// cell is born and on which a live cell survives
type Rule struct {
	birth   uint16
	survive uint16
}

var (
	// Conway is the canonical B3/S23 rule
	Conway = MustParse("B3/S23")
	// HighLife is B36/S23, which also breeds replicators
	HighLife = MustParse("B36/S23")
)

// NewRule builds a rule from explicit birth and survival counts
func NewRule(birth, survive []int) (Rule, error) {
	var r Rule
	for _, n := range birth {
		if n < 0 || n > maxNeighbors {
			return Rule{}, errors.Wrapf(ErrInvalidRule, "[NewRule] birth count %d out of range", n)
		}
		r.birth |= 1 << n
	}
	for _, n := range survive {
		if n < 0 || n > maxNeighbors {
			return Rule{}, errors.Wrapf(ErrInvalidRule, "[NewRule] survival count %d out of range", n)
		}
		r.survive |= 1 << n
	}
	return r, nil
}

// Parse reads a rule in "B3/S23" notation. Either half may be empty ("B3/S")
// but both letters and the slash are required, and digits must be 0-8.
func Parse(s string) (Rule, error) {
	b, sv, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "/")
	if !ok || !strings.HasPrefix(b, "B") || !strings.HasPrefix(sv, "S") {
		return Rule{}, errors.Wrapf(ErrInvalidRule, "[Parse] expected B<digits>/S<digits>, got %q", s)
	}

	birth, err := parseCounts(b[1:])
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] birth half of %q", s)
	}
	survive, err := parseCounts(sv[1:])
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] survival half of %q", s)
	}
	return Rule{birth: birth, survive: survive}, nil
}

// MustParse is like Parse but panics on malformed input
func MustParse(s string) Rule {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseCounts(digits string) (mask uint16, err error) {
	for _, c := range digits {
		if c < '0' || c > '0'+maxNeighbors {
			return 0, errors.Wrapf(ErrInvalidRule, "bad neighbor count %q", c)
		}
		bit := uint16(1) << (c - '0')
		if mask&bit != 0 {
			return 0, errors.Wrapf(ErrInvalidRule, "duplicate neighbor count %q", c)
		}
		mask |= bit
	}
	return mask, nil
}

// Next returns whether a cell is alive in the next generation
func (r Rule) Next(alive bool, neighbors int) bool {
	if neighbors < 0 || neighbors > maxNeighbors {
		return false
	}
	if alive {
		return r.survive&(1<<neighbors) != 0
	}
	return r.birth&(1<<neighbors) != 0
}

// String renders the rule in B/S notation
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	writeCounts(&sb, r.birth)
	sb.WriteString("/S")
	writeCounts(&sb, r.survive)
	return sb.String()
}

func writeCounts(sb *strings.Builder, mask uint16) {
	for n := 0; n <= maxNeighbors; n++ {
		if mask&(1<<n) != 0 {
			sb.WriteByte(byte('0' + n))
		}
	}
}

package model

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ParseGrid reads a board in the format written by Grid.String: one row per
// line, one A or D per cell. Blank lines and lines starting with '#' are skipped.
func ParseGrid(r io.Reader) (*Grid, error) {
	var (
		rows    [][]Cell
		lineNum int
		sc      = bufio.NewScanner(r)
	)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		row := make([]Cell, 0, len(line))
		for _, ch := range line {
			c, err := ParseCell(ch)
			if err != nil {
				return nil, errors.Wrapf(err, "[ParseGrid] line %d", lineNum)
			}
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParseGrid] failed to read board")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrMalformedPattern, "[ParseGrid] empty board")
	}

	grid, err := FromCells(rows)
	if err != nil {
		return nil, errors.Wrap(&patternError{cause: err}, "[ParseGrid]")
	}
	return grid, nil
}

// patternError reports as ErrMalformedPattern while keeping its cause in the chain
type patternError struct {
	cause error
}

func (e *patternError) Error() string { return ErrMalformedPattern.Error() + ": " + e.cause.Error() }

func (e *patternError) Is(target error) bool { return target == ErrMalformedPattern }

func (e *patternError) Unwrap() error { return e.cause }

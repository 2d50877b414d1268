package model

import (
	"bufio"
	"io"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClearScreen = "\033[H\033[2J"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the board to the terminal
func (r *TerminalRenderer) Display(board CellReader) error {
	w := bufio.NewWriter(r.Out)
	for y := range board.GetHeight() {
		for x := range board.GetWidth() {
			if board.Get(x, y).IsAlive() {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, ansiClearScreen)
	return err
}

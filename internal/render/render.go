package render

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/entity"
)

const (
	title     = "TIC-TAC-TOE (1-9)  X vs O"
	separator = "---+---+---"
	restart   = "[R = restart]"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineTitle
	lineCells
	lineSeparator
	lineStatus
)

type layoutLine struct {
	kind lineKind
	// cells - board indexes shown left to right on a lineCells row.
	cells [3]int
}

var layout = []layoutLine{
	{kind: lineTitle},
	{kind: lineBlank},
	{kind: lineCells, cells: [3]int{0, 1, 2}},
	{kind: lineSeparator},
	{kind: lineCells, cells: [3]int{3, 4, 5}},
	{kind: lineSeparator},
	{kind: lineCells, cells: [3]int{6, 7, 8}},
	{kind: lineBlank},
	{kind: lineStatus},
}

// Render - draws the whole screen for a state, starting from a cleared frame every time.
func Render(state entity.GameState) *Frame {
	frame := NewFrame()
	cur := &cursor{frame: frame}

	for _, line := range layout {
		switch line.kind {
		case lineTitle:
			cur.print(title)
		case lineCells:
			for i, idx := range line.cells {
				if i > 0 {
					cur.print(" |")
				}
				cur.putc(' ')
				cur.putc(state.Board.Label(idx))
			}
		case lineSeparator:
			cur.print(separator)
		case lineStatus:
			cur.print(status(state))
		case lineBlank:
		}

		cur.newline()
	}

	return frame
}

func status(state entity.GameState) string {
	switch state.Phase {
	case entity.PhaseWon:
		return fmt.Sprintf("Winner: %s   %s", state.Winner, restart)
	case entity.PhaseDrawn:
		return "Draw!   " + restart
	default:
		return fmt.Sprintf("Turn: %s   (press 1-9)   %s", state.Turn, restart)
	}
}

// Display - anything that can show a full frame.
type Display interface {
	Show(ctx context.Context, frame *Frame) error
}

// Driver - redraws the whole display from a game state.
type Driver struct {
	display Display
}

func NewDriver(display Display) *Driver {
	return &Driver{display: display}
}

func (that *Driver) Render(ctx context.Context, state entity.GameState) error {
	if err := that.display.Show(ctx, Render(state)); err != nil {
		return fmt.Errorf("failed to show frame: %w", err)
	}

	return nil
}

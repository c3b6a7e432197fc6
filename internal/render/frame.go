package render

import (
	"strings"
)

const (
	Columns = 80
	Lines   = 25

	// DefaultAttr - light grey on black.
	DefaultAttr byte = 0x07
)

// Cell - one character cell of text-mode video memory.
type Cell struct {
	Char byte
	Attr byte
}

type Frame [Lines][Columns]Cell

// NewFrame - a cleared screen.
func NewFrame() *Frame {
	frame := &Frame{}
	for row := range frame {
		for col := range frame[row] {
			frame[row][col] = Cell{Char: ' ', Attr: DefaultAttr}
		}
	}

	return frame
}

// Line - text of one row without trailing blanks.
func (that *Frame) Line(row int) string {
	var sb strings.Builder
	for _, cell := range that[row] {
		sb.WriteByte(cell.Char)
	}

	return strings.TrimRight(sb.String(), " ")
}

// Text - all rows joined by "\n", trailing blank rows dropped.
func (that *Frame) Text() string {
	lines := make([]string, Lines)
	for row := range that {
		lines[row] = that.Line(row)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// cursor - sequential writer over a frame, wrapping at the end of a row like the VGA text cursor.
type cursor struct {
	frame *Frame
	loc   int
}

func (that *cursor) print(s string) {
	for i := 0; i < len(s); i++ {
		that.putc(s[i])
	}
}

func (that *cursor) putc(ch byte) {
	if that.loc >= Lines*Columns {
		return
	}

	that.frame[that.loc/Columns][that.loc%Columns] = Cell{Char: ch, Attr: DefaultAttr}
	that.loc++
}

func (that *cursor) newline() {
	that.loc += Columns - that.loc%Columns
}

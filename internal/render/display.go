package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// VideoMemory - a text-mode frame buffer laid out like the one at 0xb8000:
// character byte then attribute byte, row after row.
type VideoMemory struct {
	mu  sync.RWMutex
	buf [Lines * Columns * 2]byte
}

func NewVideoMemory() *VideoMemory {
	vm := &VideoMemory{}
	vm.clear()

	return vm
}

func (that *VideoMemory) clear() {
	for i := 0; i < len(that.buf); i += 2 {
		that.buf[i] = ' '
		that.buf[i+1] = DefaultAttr
	}
}

func (that *VideoMemory) Show(_ context.Context, frame *Frame) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	i := 0
	for row := range frame {
		for _, cell := range frame[row] {
			that.buf[i] = cell.Char
			that.buf[i+1] = cell.Attr
			i += 2
		}
	}

	return nil
}

// Bytes - a copy of the raw buffer, for inspection. The screen itself is written only through Show.
func (that *VideoMemory) Bytes() []byte {
	that.mu.RLock()
	defer that.mu.RUnlock()

	out := make([]byte, len(that.buf))
	copy(out, that.buf[:])

	return out
}

// Frame - decodes the buffer back into cells.
func (that *VideoMemory) Frame() *Frame {
	that.mu.RLock()
	defer that.mu.RUnlock()

	frame := &Frame{}
	i := 0
	for row := range frame {
		for col := range frame[row] {
			frame[row][col] = Cell{Char: that.buf[i], Attr: that.buf[i+1]}
			i += 2
		}
	}

	return frame
}

func (that *VideoMemory) Text() string {
	return that.Frame().Text()
}

// clearScreen - cursor home, then erase the whole screen.
const clearScreen = "\x1b[H\x1b[2J"

// TextDisplay - redraws on a terminal in raw mode with plain escape sequences.
type TextDisplay struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTextDisplay(w io.Writer) *TextDisplay {
	return &TextDisplay{w: w}
}

func (that *TextDisplay) Show(_ context.Context, frame *Frame) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	// raw mode has no output post-processing, so lines need an explicit carriage return
	text := clearScreen + strings.ReplaceAll(frame.Text(), "\n", "\r\n") + "\r\n"
	if _, err := io.WriteString(that.w, text); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

// Multi - shows every frame on all displays, collecting their errors.
func Multi(displays ...Display) Display {
	return multiDisplay(displays)
}

type multiDisplay []Display

func (that multiDisplay) Show(ctx context.Context, frame *Frame) error {
	var errs []error
	for _, display := range that {
		if err := display.Show(ctx, frame); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

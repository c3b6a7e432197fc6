package keyboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/mattn/go-tty"
)

// TTY - reads keys from the controlling terminal in raw mode.
type TTY struct {
	tty     *tty.TTY
	encoder Encoder

	closeOnce sync.Once
	closeErr  error
}

func OpenTTY(encoder Encoder) (*TTY, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open tty: %w", err)
	}

	return &TTY{tty: t, encoder: encoder}, nil
}

// Output - the terminal for drawing, so frames and key reads share one device.
func (that *TTY) Output() *TTYWriter {
	return &TTYWriter{tty: that.tty}
}

func (that *TTY) Run(ctx context.Context, sink Sink) error {
	stop := context.AfterFunc(ctx, func() {
		// unblocks ReadRune
		_ = that.Close()
	})
	defer stop()

	for {
		r, err := that.tty.ReadRune()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to read key: %w", err)
		}

		if isQuit(r) {
			return ErrQuit
		}

		Press(that.encoder, r, sink)
	}
}

// Close - restores the terminal. Safe to call more than once.
func (that *TTY) Close() error {
	that.closeOnce.Do(func() {
		that.closeErr = that.tty.Close()
	})

	return that.closeErr
}

type TTYWriter struct {
	tty *tty.TTY
}

func (that *TTYWriter) Write(p []byte) (int, error) {
	return that.tty.Output().Write(p)
}

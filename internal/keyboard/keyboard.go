// Package keyboard turns host key presses into the make/break scancodes a PC keyboard would send.
package keyboard

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/scancode"
)

// ErrQuit - the user asked to leave the program.
var ErrQuit = errors.New("quit requested")

const (
	keyCtrlC = 0x03
	keyEsc   = 0x1b
)

// Sink - receives raw scancodes; reports false when the controller dropped the code.
type Sink func(code byte) bool

// Source - a host keyboard. Run blocks until ctx ends, input ends or the user quits (ErrQuit).
type Source interface {
	Run(ctx context.Context, sink Sink) error
}

type Encoder interface {
	Encode(ch rune) (byte, bool)
}

// Press - sends the make code of ch followed by its break code.
// Characters without a key are dropped, as a real keyboard could not produce them.
func Press(encoder Encoder, ch rune, sink Sink) {
	code, ok := encoder.Encode(ch)
	if !ok {
		return
	}

	if sink(code) {
		sink(scancode.Release(code))
	}
}

func isQuit(ch rune) bool {
	return ch == keyCtrlC || ch == keyEsc
}

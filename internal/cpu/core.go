package cpu

import "context"

// Core - the halt/wake pair of the single CPU. A wake raised while the core is running is kept
// until the next Halt, so an interrupt landing between "mailbox empty" and "halt" is never lost.
type Core struct {
	wake chan struct{}
}

func New() *Core {
	return &Core{
		wake: make(chan struct{}, 1),
	}
}

// Interrupt - wakes a halted core, or arms the next Halt to return at once. Never blocks.
func (that *Core) Interrupt() {
	select {
	case that.wake <- struct{}{}:
	default:
	}
}

// Halt - sleeps until the next interrupt. Returns ctx.Err() when the context ends first.
func (that *Core) Halt(ctx context.Context) error {
	select {
	case <-that.wake:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

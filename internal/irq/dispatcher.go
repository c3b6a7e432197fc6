package irq

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/hw"
)

type Handler interface {
	Handle()
}

type controller interface {
	hw.Bus
	Interrupts() <-chan byte
}

type waker interface {
	Interrupt()
}

// Dispatcher - the interrupt context. Vectors are served one at a time, each handler running to
// completion, so no handler is ever re-entered.
type Dispatcher struct {
	logger *slog.Logger

	controller controller
	core       waker
	handlers   map[byte]Handler
}

func NewDispatcher(logger *slog.Logger, controller controller, core waker) *Dispatcher {
	return &Dispatcher{
		logger:     logger.With("component", "irq"),
		controller: controller,
		core:       core,
		handlers:   make(map[byte]Handler),
	}
}

// Register - installs the handler for a vector. Must be called before Run.
func (that *Dispatcher) Register(vector byte, handler Handler) {
	that.handlers[vector] = handler
}

func (that *Dispatcher) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			log.Info("interrupt dispatch stopped")
			return nil
		case vector := <-that.controller.Interrupts():
			that.dispatch(log, vector)
			that.core.Interrupt()
		}
	}
}

func (that *Dispatcher) dispatch(log *slog.Logger, vector byte) {
	handler, ok := that.handlers[vector]
	if !ok {
		// the line would stay in service forever without an EOI
		log.Warn("spurious interrupt", "vector", vector)
		that.controller.WritePort(hw.PIC1Command, hw.EOI)

		return
	}

	handler.Handle()
}

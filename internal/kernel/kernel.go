package kernel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/mailbox"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/tictactoe"
)

type inbox interface {
	Take() (mailbox.Event, bool)
	Pending() bool
}

type processor interface {
	Halt(ctx context.Context) error
}

type renderer interface {
	Render(ctx context.Context, state entity.GameState) error
}

// Kernel - the main loop. It owns the only GameState; the interrupt side reaches it solely through the inbox.
type Kernel struct {
	logger *slog.Logger

	inbox    inbox
	cpu      processor
	renderer renderer
}

func New(logger *slog.Logger, inbox inbox, cpu processor, renderer renderer) *Kernel {
	return &Kernel{
		logger:   logger.With("component", "kernel"),
		inbox:    inbox,
		cpu:      cpu,
		renderer: renderer,
	}
}

// Run - resets the game, draws it, then serves one event per wake-up until ctx ends.
func (that *Kernel) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	state := entity.NewGameState()
	if err := that.renderer.Render(ctx, state); err != nil {
		return fmt.Errorf("failed to render initial state: %w", err)
	}

	for {
		event, ok := that.inbox.Take()
		if !ok {
			if err := that.cpu.Halt(ctx); err != nil {
				log.Info("main loop stopped", "unread_key", that.inbox.Pending())
				return nil
			}

			continue
		}

		next, accepted := tictactoe.Step(state, event)
		if !accepted {
			continue
		}

		state = next
		log.Debug("event accepted", "key", string(rune(event)), "turn", state.Turn, "phase", state.Phase)

		if err := that.renderer.Render(ctx, state); err != nil {
			return fmt.Errorf("failed to render state: %w", err)
		}
	}
}

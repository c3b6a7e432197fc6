package keyboard

import (
	"context"
	"time"
)

// Script - types a fixed string, one key every interval, then stops.
type Script struct {
	keys     string
	interval time.Duration
	encoder  Encoder
}

func NewScript(encoder Encoder, keys string, interval time.Duration) *Script {
	return &Script{
		keys:     keys,
		interval: interval,
		encoder:  encoder,
	}
}

func (that *Script) Run(ctx context.Context, sink Sink) error {
	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	for _, r := range that.keys {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if isQuit(r) {
			return ErrQuit
		}

		Press(that.encoder, r, sink)
	}

	return nil
}

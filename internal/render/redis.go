package render

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// RedisMirror - publishes every frame to a pub/sub channel so another terminal can follow the screen.
// Nothing is stored: a subscriber sees frames only while it is connected.
type RedisMirror struct {
	client  *redis.Client
	channel string
}

func NewRedisMirror(client *redis.Client, channel string) *RedisMirror {
	return &RedisMirror{
		client:  client,
		channel: channel,
	}
}

func (that *RedisMirror) Show(ctx context.Context, frame *Frame) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := that.client.Publish(ctx, that.channel, frame.Text()).Err(); err != nil {
		return fmt.Errorf("failed to publish frame: %w", err)
	}

	return nil
}

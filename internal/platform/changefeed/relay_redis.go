package changefeed

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRelay forwards change signals through Redis pub/sub.
type RedisRelay struct {
	client  *redis.Client
	channel string
	origin  origin
}

var _ Relay = (*RedisRelay)(nil)

// NewRedisRelay creates a RedisRelay. If channel is empty, DefaultChannel is used.
func NewRedisRelay(client *redis.Client, channel string, broker *Broker) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisRelay{client: client, channel: channel, origin: newOrigin(broker)}
}

// Publish announces a local change to other processes.
func (r *RedisRelay) Publish(ctx context.Context) error {
	return r.client.Publish(ctx, r.channel, r.origin.id).Err()
}

// Run subscribes to the channel and notifies the broker for every message
// published by another process.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	// 購読が確立するまで待つ
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription %s closed", r.channel)
			}
			r.origin.deliver(msg.Payload)
		}
	}
}

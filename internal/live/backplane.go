package live

import (
	"context"
	"log/slog"

	platformredis "backoffice/internal/platform/redis"
)

// Backplane bridges hubs across service instances over redis pub/sub. A
// mutation publishes to the redis channel; every instance's Run loop
// re-broadcasts into its local hub, including the publishing instance's own.
type Backplane struct {
	redis   *platformredis.Client
	channel string
	hub     *Hub
	logger  *slog.Logger
}

func NewBackplane(redis *platformredis.Client, channel string, hub *Hub, logger *slog.Logger) *Backplane {
	return &Backplane{redis: redis, channel: channel, hub: hub, logger: logger}
}

// Publish sends an event through redis. Publish failures degrade to a local
// broadcast so single-instance behavior survives a redis outage.
func (b *Backplane) Publish(event Event) {
	if err := b.redis.Publish(context.Background(), b.channel, string(event)).Err(); err != nil {
		b.logger.Warn("backplane publish failed, broadcasting locally",
			"error", err,
			"event", string(event),
		)
		b.hub.Broadcast(event)
	}
}

// Run subscribes to the redis channel and re-broadcasts received signals
// into the local hub until ctx is cancelled. go-redis reconnects the pubsub
// connection automatically; a missed signal during reconnection is recovered
// by the next resync.
func (b *Backplane) Run(ctx context.Context) error {
	pubsub := b.redis.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.hub.Broadcast(Event(msg.Payload))
		}
	}
}

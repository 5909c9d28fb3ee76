package broadcast

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

// RedisPublisher publishes events on a Redis pub/sub channel so every API
// instance can relay them to its own websocket subscribers.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := Encode(evt)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s to redis channel %s: %w", evt.Type, p.channel, err)
	}
	return nil
}

// RedisRelay subscribes to the event channel and forwards every event to a
// local publisher, usually the Hub.
type RedisRelay struct {
	client  redis.UniversalClient
	channel string
	target  Publisher
	logger  *logging.Logger
}

func NewRedisRelay(client redis.UniversalClient, channel string, target Publisher, logger *logging.Logger) *RedisRelay {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisRelay{client: client, channel: channel, target: target, logger: logger.Named("broadcast.relay")}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to redis channel %s: %w", r.channel, err)
	}
	r.logger.InfoContext(ctx, "relaying redis events", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			evt, err := Decode([]byte(msg.Payload))
			if err != nil {
				r.logger.WarnContext(ctx, "skipping malformed event", "channel", msg.Channel, "error", err)
				continue
			}
			if err := r.target.Publish(ctx, evt); err != nil {
				r.logger.WarnContext(ctx, "relay event failed", "event_type", evt.Type, "event_id", evt.ID, "error", err)
			}
		}
	}
}

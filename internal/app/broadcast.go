package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fantasy-auction/internal/config"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/redislock"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

// eventBus is the publish side handed to the services plus whatever has to be
// run or closed alongside it.
type eventBus struct {
	publisher broadcast.Publisher
	hub       *broadcast.Hub
	relay     *broadcast.RedisRelay
	locker    usecase.TickLocker
	closers   []func() error
}

// newEventBus builds the topology:
//
//	no redis: services -> fanout(hub, nats)
//	redis:    services -> fanout(nats, redis pub); redis sub -> hub
//
// With Redis every instance's hub sees every instance's events, and the same
// client backs the auto-bid tick lock.
func newEventBus(ctx context.Context, cfg config.Config, logger *logging.Logger) (*eventBus, error) {
	bus := &eventBus{hub: broadcast.NewHub(cfg.CORSAllowedOrigins, logger)}
	bus.closers = append(bus.closers, func() error {
		bus.hub.Close()
		return nil
	})

	var publishers []broadcast.Publisher

	if cfg.NATSURL != "" {
		nats, err := broadcast.NewNATSPublisher(ctx, broadcast.NATSConfig{
			URL:    cfg.NATSURL,
			Stream: cfg.NATSStream,
			MaxAge: cfg.NATSMaxAge,
		}, logger)
		if err != nil {
			bus.close(logger)
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		publishers = append(publishers, nats)
		bus.closers = append(bus.closers, nats.Close)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			bus.close(logger)
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		publishers = append(publishers, broadcast.NewRedisPublisher(client, cfg.RedisChannel))
		bus.relay = broadcast.NewRedisRelay(client, cfg.RedisChannel, bus.hub, logger)
		bus.locker = redislock.New(client)
		bus.closers = append(bus.closers, client.Close)
	} else {
		publishers = append(publishers, bus.hub)
	}

	bus.publisher = broadcast.NewFanout(publishers...)
	logger.Info("event bus ready",
		"nats", cfg.NATSURL != "",
		"redis", cfg.RedisAddr != "",
		"publishers", len(publishers),
	)
	return bus, nil
}

// close runs closers in reverse order and logs failures.
func (b *eventBus) close(logger *logging.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("close event bus component failed", "error", err)
		}
	}
	b.closers = nil
}

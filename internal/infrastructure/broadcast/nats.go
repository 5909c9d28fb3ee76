package broadcast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type NATSConfig struct {
	URL           string
	Stream        string
	MaxAge        time.Duration
	PublishTimeout time.Duration
}

// NATSPublisher appends every event to a JetStream stream so other services can
// replay the auction room. Subjects are "<stream>.<event type>" in lower case.
type NATSPublisher struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	prefix  string
	timeout time.Duration
	logger  *logging.Logger
}

func NewNATSPublisher(ctx context.Context, cfg NATSConfig, logger *logging.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("broadcast.nats")

	stream := strings.TrimSpace(cfg.Stream)
	if stream == "" {
		stream = "AUCTION_EVENTS"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 7 * 24 * time.Hour
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 3 * time.Second
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name("fantasy-auction"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	prefix := strings.ToLower(stream)
	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        stream,
		Description: "Fantasy auction room events",
		Subjects:    []string{prefix + ".>"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      cfg.MaxAge,
		Replicas:    1,
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream %s: %w", stream, err)
	}

	logger.Info("jetstream stream ready", "stream", stream)
	return &NATSPublisher{nc: nc, js: js, prefix: prefix, timeout: cfg.PublishTimeout, logger: logger}, nil
}

func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + strings.ToLower(eventType)
}

func (p *NATSPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := Encode(evt)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	subject := p.Subject(evt.Type)
	if _, err := p.js.Publish(ctx, subject, payload, jetstream.WithMsgID(evt.ID)); err != nil {
		return fmt.Errorf("publish %s to jetstream: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return fmt.Errorf("drain nats connection: %w", err)
	}
	return nil
}

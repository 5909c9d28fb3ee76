package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	idgen "github.com/riskibarqy/fantasy-auction/internal/platform/id"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type eventSink struct {
	publisher broadcast.Publisher
	ids       idgen.Generator
	logger    *logging.Logger
}

func newEventSink(publisher broadcast.Publisher, ids idgen.Generator, logger *logging.Logger) eventSink {
	if publisher == nil {
		publisher = broadcast.NopPublisher{}
	}
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}
	return eventSink{publisher: publisher, ids: ids, logger: logger}
}

func (e eventSink) emit(ctx context.Context, eventType string, data any, at time.Time) {
	evt := broadcast.Event{
		ID:         idgen.MustNewID(e.ids),
		Type:       eventType,
		Data:       data,
		OccurredAt: at,
	}
	if err := e.publisher.Publish(ctx, evt); err != nil {
		e.logger.WarnContext(ctx, "publish event failed", "event_type", eventType, "event_id", evt.ID, "error", err)
	}
}

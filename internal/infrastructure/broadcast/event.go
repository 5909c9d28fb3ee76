package broadcast

import (
	"context"
	"time"
)

// Event types streamed to auction room subscribers.
const (
	EventDraftInitialized    = "draft-initialized"
	EventDraftStarted        = "draft-started"
	EventDraftTurnAdvanced   = "draft-turn-advanced"
	EventDraftCompleted      = "draft-completed"
	EventDraftReset          = "draft-reset"
	EventAuctionStarted      = "auction-started"
	EventNewBid              = "new-bid"
	EventAuctionCompleted    = "auction-completed"
	EventAuctionRestarted    = "auction-restarted"
	EventBidCancelled        = "bid-cancelled"
	EventSellingStageUpdated = "selling-stage-updated"
	EventWaitRequested       = "wait-requested"
	EventWaitAccepted        = "wait-accepted"
	EventWaitRejected        = "wait-rejected"
	EventBreakStarted        = "break-started"
	EventBreakEnded          = "break-ended"
	EventPointsCalculated    = "points-calculated"
)

// Event is one state transition pushed to subscribers.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers events to subscribers. Delivery is best effort; callers log
// errors and never roll back on them.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, evt Event) error

func (f PublisherFunc) Publish(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

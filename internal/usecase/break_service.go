package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	idgen "github.com/riskibarqy/fantasy-auction/internal/platform/id"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

// BreakStatus is the process-wide auction pause flag.
type BreakStatus struct {
	OnBreak   bool
	StartedAt *time.Time
	StartedBy int64
}

// BreakService pauses the auction room. While on break new auctions and manual
// bids are rejected and the auto-bid loop idles.
type BreakService struct {
	mu     sync.RWMutex
	status BreakStatus
	events eventSink
	logger *logging.Logger
	now    func() time.Time
}

func NewBreakService(publisher broadcast.Publisher, ids idgen.Generator, logger *logging.Logger) *BreakService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BreakService{
		events: newEventSink(publisher, ids, logger),
		logger: logger,
		now:    time.Now,
	}
}

func (s *BreakService) Status(_ context.Context) BreakStatus {
	if s == nil {
		return BreakStatus{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *BreakService) OnBreak() bool {
	return s.Status(context.Background()).OnBreak
}

// Toggle flips the flag on behalf of teamID.
func (s *BreakService) Toggle(ctx context.Context, teamID int64) BreakStatus {
	s.mu.Lock()
	now := s.now().UTC()
	if s.status.OnBreak {
		s.status = BreakStatus{}
	} else {
		s.status = BreakStatus{OnBreak: true, StartedAt: &now, StartedBy: teamID}
	}
	status := s.status
	s.mu.Unlock()

	s.publish(ctx, status, now)
	return status
}

func (s *BreakService) End(ctx context.Context) BreakStatus {
	s.mu.Lock()
	wasOnBreak := s.status.OnBreak
	s.status = BreakStatus{}
	s.mu.Unlock()

	if wasOnBreak {
		s.publish(ctx, BreakStatus{}, s.now().UTC())
	}
	return BreakStatus{}
}

func (s *BreakService) publish(ctx context.Context, status BreakStatus, at time.Time) {
	if status.OnBreak {
		s.logger.InfoContext(ctx, "break started", "team_id", status.StartedBy)
		s.events.emit(ctx, broadcast.EventBreakStarted, map[string]any{
			"startedBy": status.StartedBy,
			"startedAt": at,
		}, at)
		return
	}
	s.logger.InfoContext(ctx, "break ended")
	s.events.emit(ctx, broadcast.EventBreakEnded, map[string]any{"endedAt": at}, at)
}

package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/platform/cache"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

const (
	eventsCacheKey     = "gameweek:events"
	fixtureCacheKey    = "gameweek:fixtures:"
	liveStatsCacheKey  = "gameweek:live:"
	DefaultCalendarTTL = 5 * time.Minute
	DefaultLiveTTL     = 5 * time.Minute
)

// GameweekService resolves the real-world gameweek calendar and live player
// stats. Upstream calls are cached.
type GameweekService struct {
	calendar gameweek.Calendar
	stats    gameweek.StatsProvider
	calCache *cache.Store
	live     *cache.Store
	logger   *logging.Logger
	now      func() time.Time
}

func NewGameweekService(
	calendar gameweek.Calendar,
	stats gameweek.StatsProvider,
	calendarCache *cache.Store,
	liveCache *cache.Store,
	logger *logging.Logger,
) *GameweekService {
	if logger == nil {
		logger = logging.Default()
	}
	if calendarCache == nil {
		calendarCache = cache.NewStore(DefaultCalendarTTL)
	}
	if liveCache == nil {
		liveCache = cache.NewStore(DefaultLiveTTL)
	}

	return &GameweekService{
		calendar: calendar,
		stats:    stats,
		calCache: calendarCache,
		live:     liveCache,
		logger:   logger,
		now:      time.Now,
	}
}

// Current returns the gameweek open for submissions.
func (s *GameweekService) Current(ctx context.Context) (gameweek.Info, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Current")
	defer span.End()

	events, err := s.events(ctx)
	if err != nil {
		return gameweek.Info{}, err
	}
	current, ok := gameweek.Current(events, s.now().UTC())
	if !ok {
		return gameweek.Info{}, fmt.Errorf("%w: no current or upcoming gameweek", ErrNotFound)
	}
	return s.withType(ctx, current), nil
}

// Info returns gameweek gw with its type. The deadline comes only from the
// calendar: an unavailable calendar or an unknown gameweek is an error. Only
// the type falls back to normal when fixture counts are missing.
func (s *GameweekService) Info(ctx context.Context, gw int) (gameweek.Info, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Info")
	defer span.End()

	if gw < 1 {
		return gameweek.Info{}, fmt.Errorf("%w: gameweek must be positive", ErrInvalidInput)
	}

	events, err := s.events(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "gameweek calendar unavailable", "gameweek", gw, "error", err)
		return gameweek.Info{}, err
	}
	for _, e := range events {
		if e.Number == gw {
			return s.withType(ctx, e), nil
		}
	}
	return gameweek.Info{}, fmt.Errorf("%w: gameweek %d is not in the calendar", ErrNotFound, gw)
}

// LiveStats implements gameweek.StatsProvider. Upstream failures degrade to an
// empty map so scoring treats every player as not having played.
func (s *GameweekService) LiveStats(ctx context.Context, gw int) (map[int64]gameweek.PlayerStats, error) {
	if gw < 1 {
		return nil, fmt.Errorf("%w: gameweek must be positive", ErrInvalidInput)
	}

	stats, err := cache.Load(ctx, s.live, liveStatsCacheKey+strconv.Itoa(gw), func(ctx context.Context) (map[int64]gameweek.PlayerStats, error) {
		return s.stats.LiveStats(ctx, gw)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "live stats unavailable", "gameweek", gw, "error", err)
		return map[int64]gameweek.PlayerStats{}, nil
	}
	return stats, nil
}

// Refresh drops cached upstream data.
func (s *GameweekService) Refresh(ctx context.Context) {
	s.calCache.DeletePrefix(ctx, "gameweek:")
	s.live.DeletePrefix(ctx, liveStatsCacheKey)
}

func (s *GameweekService) events(ctx context.Context) ([]gameweek.Info, error) {
	events, err := cache.Load(ctx, s.calCache, eventsCacheKey, s.calendar.Events)
	if err != nil {
		return nil, fmt.Errorf("%w: load gameweek calendar: %v", ErrDependencyUnavailable, err)
	}
	return events, nil
}

func (s *GameweekService) withType(ctx context.Context, info gameweek.Info) gameweek.Info {
	count, err := cache.Load(ctx, s.calCache, fixtureCacheKey+strconv.Itoa(info.Number), func(ctx context.Context) (int, error) {
		return s.calendar.FixtureCount(ctx, info.Number)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "fixture count unavailable, assuming normal gameweek", "gameweek", info.Number, "error", err)
		fallback := gameweek.DefaultInfo(info.Number)
		info.Type = fallback.Type
		info.MatchCount = fallback.MatchCount
		return info
	}

	info.MatchCount = count
	info.Type = gameweek.TypeFromFixtureCount(count)
	return info
}

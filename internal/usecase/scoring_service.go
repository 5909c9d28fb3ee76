package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	idgen "github.com/riskibarqy/fantasy-auction/internal/platform/id"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

const defaultScoringWorkers = 4

// submissionSource resolves the lineup a team plays in a gameweek.
type submissionSource interface {
	Get(ctx context.Context, teamID int64, gw int) (gameweek.Submission, bool, error)
}

type ScoringService struct {
	submissions submissionSource
	points      scoring.Repository
	players     player.Repository
	teams       team.Repository
	stats       gameweek.StatsProvider
	events      eventSink
	workers     int
	logger      *logging.Logger
	now         func() time.Time
	rankMu      sync.Mutex
}

type CalculateGameweekResult struct {
	Gameweek   int
	Calculated int
	Skipped    int
	Failed     int
	Points     []scoring.GameweekPoints
}

// LeaderboardRow is one ranked team. Gameweek is zero for season totals.
type LeaderboardRow struct {
	Rank        int
	TeamID      int64
	TeamName    string
	Gameweek    int
	Points      int64
	Chip        string
	Gameweeks   int
	CaptainID   int64
	Substituted int
}

func NewScoringService(
	submissions submissionSource,
	points scoring.Repository,
	players player.Repository,
	teams team.Repository,
	stats gameweek.StatsProvider,
	publisher broadcast.Publisher,
	ids idgen.Generator,
	workers int,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultScoringWorkers
	}

	return &ScoringService{
		submissions: submissions,
		points:      points,
		players:     players,
		teams:       teams,
		stats:       stats,
		events:      newEventSink(publisher, ids, logger),
		workers:     workers,
		logger:      logger,
		now:         time.Now,
	}
}

// Breakdown scores the team's lineup for gw without persisting it.
func (s *ScoringService) Breakdown(ctx context.Context, teamID int64, gw int) (scoring.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Breakdown")
	defer span.End()

	stats, err := s.liveStats(ctx, gw)
	if err != nil {
		return scoring.Result{}, err
	}
	result, _, err := s.compute(ctx, teamID, gw, stats)
	return result, err
}

// CalculateTeamPoints scores, persists and re-ranks one team.
func (s *ScoringService) CalculateTeamPoints(ctx context.Context, teamID int64, gw int) (scoring.GameweekPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CalculateTeamPoints")
	defer span.End()

	stats, err := s.liveStats(ctx, gw)
	if err != nil {
		return scoring.GameweekPoints{}, err
	}
	_, points, err := s.compute(ctx, teamID, gw, stats)
	if err != nil {
		return scoring.GameweekPoints{}, err
	}
	if err := s.points.Upsert(ctx, points); err != nil {
		return scoring.GameweekPoints{}, fmt.Errorf("save gameweek points: %w", err)
	}

	ranks, err := s.recomputeRanks(ctx, gw)
	if err != nil {
		return scoring.GameweekPoints{}, err
	}
	points.Rank = ranks[teamID]

	s.logger.InfoContext(ctx, "team points calculated", "team_id", teamID, "gameweek", gw, "points", points.FinalPoints, "rank", points.Rank)
	return points, nil
}

// CalculateGameweek scores every team with a lineup for gw in parallel and then
// ranks the gameweek once.
func (s *ScoringService) CalculateGameweek(ctx context.Context, gw int) (CalculateGameweekResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CalculateGameweek")
	defer span.End()

	stats, err := s.liveStats(ctx, gw)
	if err != nil {
		return CalculateGameweekResult{}, err
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return CalculateGameweekResult{}, fmt.Errorf("list teams: %w", err)
	}

	pool, err := ants.NewPool(min(s.workers, max(len(teams), 1)))
	if err != nil {
		return CalculateGameweekResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	result := CalculateGameweekResult{Gameweek: gw}
	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, t := range teams {
		workers.Add(1)
		teamID := t.ID
		if err := pool.Submit(func() {
			defer workers.Done()

			_, points, err := s.compute(ctx, teamID, gw, stats)
			if err == nil {
				err = s.points.Upsert(ctx, points)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Calculated++
				result.Points = append(result.Points, points)
			case errors.Is(err, ErrNotFound):
				result.Skipped++
			default:
				result.Failed++
				s.logger.WarnContext(ctx, "team points calculation failed", "team_id", teamID, "gameweek", gw, "error", err)
			}
		}); err != nil {
			workers.Done()
			return CalculateGameweekResult{}, fmt.Errorf("submit scoring task: %w", err)
		}
	}
	workers.Wait()

	ranks, err := s.recomputeRanks(ctx, gw)
	if err != nil {
		return CalculateGameweekResult{}, err
	}
	for i := range result.Points {
		result.Points[i].Rank = ranks[result.Points[i].TeamID]
	}
	sort.SliceStable(result.Points, func(i, j int) bool {
		return result.Points[i].Rank < result.Points[j].Rank
	})

	now := s.now().UTC()
	s.logger.InfoContext(ctx, "gameweek points calculated",
		"gameweek", gw,
		"calculated", result.Calculated,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	s.events.emit(ctx, broadcast.EventPointsCalculated, map[string]any{
		"gameweek":   gw,
		"calculated": result.Calculated,
	}, now)
	return result, nil
}

// Leaderboard ranks teams for gw, or by season total when gw is zero.
func (s *ScoringService) Leaderboard(ctx context.Context, gw int) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Leaderboard")
	defer span.End()

	if gw < 0 {
		return nil, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	names := make(map[int64]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	if gw > 0 {
		items, err := s.points.ListByGameweek(ctx, gw)
		if err != nil {
			return nil, fmt.Errorf("list gameweek points: %w", err)
		}
		rows := make([]LeaderboardRow, 0, len(items))
		for _, item := range items {
			rows = append(rows, LeaderboardRow{
				Rank:        item.Rank,
				TeamID:      item.TeamID,
				TeamName:    names[item.TeamID],
				Gameweek:    item.Gameweek,
				Points:      item.FinalPoints,
				Chip:        string(item.Chip),
				Gameweeks:   1,
				CaptainID:   item.EffectiveCaptainID,
				Substituted: len(item.Substitutions),
			})
		}
		return rows, nil
	}

	totals := make([]scoring.GameweekPoints, 0, len(teams))
	played := make(map[int64]int, len(teams))
	for _, t := range teams {
		items, err := s.points.ListByTeam(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("list team points: %w", err)
		}
		total := scoring.GameweekPoints{TeamID: t.ID}
		for _, item := range items {
			total.FinalPoints += item.FinalPoints
		}
		played[t.ID] = len(items)
		totals = append(totals, total)
	}

	ranked := scoring.AssignRanks(totals)
	rows := make([]LeaderboardRow, 0, len(ranked))
	for _, item := range ranked {
		rows = append(rows, LeaderboardRow{
			Rank:      item.Rank,
			TeamID:    item.TeamID,
			TeamName:  names[item.TeamID],
			Points:    item.FinalPoints,
			Gameweeks: played[item.TeamID],
		})
	}
	return rows, nil
}

func (s *ScoringService) TeamHistory(ctx context.Context, teamID int64) ([]scoring.HistoryRow, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	items, err := s.points.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team points: %w", err)
	}
	return scoring.BuildHistory(items), nil
}

func (s *ScoringService) liveStats(ctx context.Context, gw int) (map[int64]gameweek.PlayerStats, error) {
	if gw < 1 {
		return nil, fmt.Errorf("%w: gameweek must be positive", ErrInvalidInput)
	}
	stats, err := s.stats.LiveStats(ctx, gw)
	if err != nil {
		return nil, fmt.Errorf("%w: live stats gameweek=%d: %v", ErrDependencyUnavailable, gw, err)
	}
	return stats, nil
}

func (s *ScoringService) compute(ctx context.Context, teamID int64, gw int, stats map[int64]gameweek.PlayerStats) (scoring.Result, scoring.GameweekPoints, error) {
	sub, ok, err := s.submissions.Get(ctx, teamID, gw)
	if err != nil {
		return scoring.Result{}, scoring.GameweekPoints{}, err
	}
	if !ok {
		return scoring.Result{}, scoring.GameweekPoints{}, fmt.Errorf("%w: no lineup for team %d gameweek %d", ErrNotFound, teamID, gw)
	}

	ids := sub.AllPlayerIDs()
	players, err := s.players.GetByIDs(ctx, ids)
	if err != nil {
		return scoring.Result{}, scoring.GameweekPoints{}, fmt.Errorf("get lineup players: %w", err)
	}
	byID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	if len(byID) != len(ids) {
		return scoring.Result{}, scoring.GameweekPoints{}, fmt.Errorf("%w: lineup of team %d references unknown players", ErrNotFound, teamID)
	}

	result := scoring.Calculate(scoring.Input{
		Starting:         sub.Starting,
		Bench:            sub.Bench,
		CaptainID:        sub.CaptainID,
		ViceCaptainID:    sub.ViceCaptainID,
		ClubMultiplierID: sub.ClubMultiplierID,
		Chip:             sub.Chip,
		Players:          byID,
		Stats:            stats,
	})

	return result, scoring.GameweekPoints{
		TeamID:             teamID,
		Gameweek:           gw,
		BasePoints:         result.BasePoints,
		FinalPoints:        result.FinalPoints,
		Chip:               result.Chip,
		EffectiveCaptainID: result.EffectiveCaptainID,
		Substitutions:      result.Substitutions,
		CalculatedAt:       s.now().UTC(),
	}, nil
}

// recomputeRanks ranks every stored team of gw by final points. Ties are broken
// by team id.
func (s *ScoringService) recomputeRanks(ctx context.Context, gw int) (map[int64]int, error) {
	s.rankMu.Lock()
	defer s.rankMu.Unlock()

	items, err := s.points.ListByGameweek(ctx, gw)
	if err != nil {
		return nil, fmt.Errorf("list gameweek points: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].TeamID < items[j].TeamID })

	ranked := scoring.AssignRanks(items)
	ranks := make(map[int64]int, len(ranked))
	for _, item := range ranked {
		ranks[item.TeamID] = item.Rank
	}
	if err := s.points.UpdateRanks(ctx, gw, ranks); err != nil {
		return nil, fmt.Errorf("update ranks: %w", err)
	}
	return ranks, nil
}

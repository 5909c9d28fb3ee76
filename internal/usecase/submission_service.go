package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type SubmitInput struct {
	TeamID           int64
	Gameweek         int
	Starting         []int64
	Bench            []int64
	CaptainID        int64
	ViceCaptainID    int64
	ClubMultiplierID int64
	Chip             string
}

type SwapPlayersInput struct {
	TeamID   int64
	Gameweek int
	OutID    int64
	InID     int64
}

// gameweekInfoSource is the part of GameweekService submissions depend on.
type gameweekInfoSource interface {
	Info(ctx context.Context, gw int) (gameweek.Info, error)
}

type SubmissionService struct {
	submissions gameweek.SubmissionRepository
	chips       chip.Repository
	rosters     rosterLoader
	resolver    *DraftResolver
	gameweeks   gameweekInfoSource
	logger      *logging.Logger
	now         func() time.Time
}

func NewSubmissionService(
	submissions gameweek.SubmissionRepository,
	chips chip.Repository,
	squads squad.Repository,
	players player.Repository,
	resolver *DraftResolver,
	gameweeks gameweekInfoSource,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SubmissionService{
		submissions: submissions,
		chips:       chips,
		rosters:     rosterLoader{squads: squads, players: players},
		resolver:    resolver,
		gameweeks:   gameweeks,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, input SubmitInput) (gameweek.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit")
	defer span.End()

	selected, err := chip.Parse(input.Chip)
	if err != nil {
		return gameweek.Submission{}, err
	}

	sub := gameweek.Submission{
		TeamID:           input.TeamID,
		Gameweek:         input.Gameweek,
		Starting:         append([]int64(nil), input.Starting...),
		Bench:            append([]int64(nil), input.Bench...),
		CaptainID:        input.CaptainID,
		ViceCaptainID:    input.ViceCaptainID,
		ClubMultiplierID: input.ClubMultiplierID,
		Chip:             selected,
	}
	if err := sub.ValidateShape(); err != nil {
		return gameweek.Submission{}, err
	}

	info, err := s.gameweeks.Info(ctx, input.Gameweek)
	if err != nil {
		return gameweek.Submission{}, err
	}
	now := s.now().UTC()
	compliance, err := classifyDeadline(info, now)
	if err != nil {
		return gameweek.Submission{}, err
	}

	positions, err := s.checkOwnership(ctx, sub)
	if err != nil {
		return gameweek.Submission{}, err
	}
	if err := lineup.ValidateFormationIDs(sub.Starting, positions); err != nil {
		return gameweek.Submission{}, err
	}

	used, err := s.chips.ListByTeam(ctx, sub.TeamID)
	if err != nil {
		return gameweek.Submission{}, fmt.Errorf("list chip usage: %w", err)
	}
	if err := chip.ValidateUse(sub.Chip, sub.Gameweek, info, used); err != nil {
		return gameweek.Submission{}, err
	}

	sub.SubmittedAt = now
	sub.Compliance = compliance
	if err := s.submissions.Save(ctx, sub); err != nil {
		return gameweek.Submission{}, fmt.Errorf("save submission: %w", err)
	}

	s.logger.InfoContext(ctx, "gameweek submission saved",
		"team_id", sub.TeamID,
		"gameweek", sub.Gameweek,
		"compliance", string(sub.Compliance),
		"chip", string(sub.Chip),
	)
	return sub, nil
}

// Get returns the team's submission for gw. Without one, the most recent
// earlier submission is carried forward without its chip.
func (s *SubmissionService) Get(ctx context.Context, teamID int64, gw int) (gameweek.Submission, bool, error) {
	if teamID <= 0 || gw < 1 {
		return gameweek.Submission{}, false, fmt.Errorf("%w: team id and gameweek are required", ErrInvalidInput)
	}

	sub, ok, err := s.submissions.Get(ctx, teamID, gw)
	if err != nil {
		return gameweek.Submission{}, false, fmt.Errorf("get submission: %w", err)
	}
	if ok {
		return sub, true, nil
	}

	prev, ok, err := s.submissions.GetLatestBefore(ctx, teamID, gw)
	if err != nil {
		return gameweek.Submission{}, false, fmt.Errorf("get previous submission: %w", err)
	}
	if !ok {
		return gameweek.Submission{}, false, nil
	}
	return prev.AsDefaultFor(gw), true, nil
}

func (s *SubmissionService) ListByGameweek(ctx context.Context, gw int) ([]gameweek.Submission, error) {
	items, err := s.submissions.ListByGameweek(ctx, gw)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return items, nil
}

func (s *SubmissionService) History(ctx context.Context, teamID int64, gw int) ([]gameweek.HistoryEntry, error) {
	if teamID <= 0 || gw < 1 {
		return nil, fmt.Errorf("%w: team id and gameweek are required", ErrInvalidInput)
	}
	items, err := s.submissions.ListHistory(ctx, teamID, gw)
	if err != nil {
		return nil, fmt.Errorf("list submission history: %w", err)
	}
	return items, nil
}

// SwapPlayers exchanges one starter with one bench player on the current
// submission. The swap is open until the grace deadline.
func (s *SubmissionService) SwapPlayers(ctx context.Context, input SwapPlayersInput) (gameweek.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.SwapPlayers")
	defer span.End()

	sub, ok, err := s.Get(ctx, input.TeamID, input.Gameweek)
	if err != nil {
		return gameweek.Submission{}, err
	}
	if !ok {
		return gameweek.Submission{}, fmt.Errorf("%w: no submission for team %d gameweek %d", ErrNotFound, input.TeamID, input.Gameweek)
	}

	info, err := s.gameweeks.Info(ctx, input.Gameweek)
	if err != nil {
		return gameweek.Submission{}, err
	}
	now := s.now().UTC()
	compliance, err := classifyDeadline(info, now)
	if err != nil {
		return gameweek.Submission{}, err
	}

	positions, err := s.checkOwnership(ctx, sub)
	if err != nil {
		return gameweek.Submission{}, err
	}
	starting, bench, err := lineup.Swap(sub.Starting, sub.Bench, input.OutID, input.InID, positions)
	if err != nil {
		return gameweek.Submission{}, err
	}

	sub.Starting = starting
	sub.Bench = bench
	if err := sub.ValidateShape(); err != nil {
		return gameweek.Submission{}, err
	}
	sub.SubmittedAt = now
	sub.Compliance = compliance
	sub.IsDefault = false
	if err := s.submissions.Save(ctx, sub); err != nil {
		return gameweek.Submission{}, fmt.Errorf("save submission: %w", err)
	}

	s.logger.InfoContext(ctx, "players swapped", "team_id", sub.TeamID, "gameweek", sub.Gameweek, "out", input.OutID, "in", input.InID)
	return sub, nil
}

// checkOwnership verifies every selected player and the club multiplier belong
// to the team in the active draft and returns the player positions.
func (s *SubmissionService) checkOwnership(ctx context.Context, sub gameweek.Submission) (map[int64]player.Position, error) {
	d, err := s.resolver.Active(ctx)
	if err != nil {
		return nil, err
	}
	roster, _, err := s.rosters.load(ctx, d.ID, sub.TeamID)
	if err != nil {
		return nil, err
	}

	positions := make(map[int64]player.Position, len(roster.Players))
	for _, p := range roster.Players {
		positions[p.ID] = p.Position
	}
	for _, id := range sub.AllPlayerIDs() {
		if _, ok := positions[id]; !ok {
			return nil, fmt.Errorf("%w: player %d is not in the squad of team %d", gameweek.ErrInvalidSubmission, id, sub.TeamID)
		}
	}
	if !roster.OwnsClub(sub.ClubMultiplierID) {
		return nil, fmt.Errorf("%w: club %d is not owned by team %d", gameweek.ErrInvalidSubmission, sub.ClubMultiplierID, sub.TeamID)
	}

	return positions, nil
}

// classifyDeadline rejects gameweeks without a known deadline and anything
// past the grace window.
func classifyDeadline(info gameweek.Info, now time.Time) (gameweek.Compliance, error) {
	if info.Deadline.IsZero() {
		return "", fmt.Errorf("%w: gameweek %d has no known deadline", ErrDependencyUnavailable, info.Number)
	}
	compliance := gameweek.Classify(info.Deadline, now)
	if compliance == gameweek.ComplianceLate {
		return "", fmt.Errorf("%w: gameweek %d closed at %s", gameweek.ErrDeadlinePassed, info.Number, info.GraceDeadline().Format(time.RFC3339))
	}
	return compliance, nil
}

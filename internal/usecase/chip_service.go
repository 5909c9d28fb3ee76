package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type FinalizeChipsResult struct {
	Gameweek int
	Recorded int
	Existing int
}

type ChipService struct {
	chips       chip.Repository
	submissions gameweek.SubmissionRepository
	gameweeks   gameweekInfoSource
	logger      *logging.Logger
	now         func() time.Time
}

func NewChipService(chips chip.Repository, submissions gameweek.SubmissionRepository, gameweeks gameweekInfoSource, logger *logging.Logger) *ChipService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChipService{
		chips:       chips,
		submissions: submissions,
		gameweeks:   gameweeks,
		logger:      logger,
		now:         time.Now,
	}
}

// Status lists every chip for the team with its usage and whether it is planned
// for gw.
func (s *ChipService) Status(ctx context.Context, teamID int64, gw int) ([]chip.Status, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	used, err := s.chips.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list chip usage: %w", err)
	}

	planned := chip.None
	if gw > 0 {
		sub, ok, err := s.submissions.Get(ctx, teamID, gw)
		if err != nil {
			return nil, fmt.Errorf("get submission: %w", err)
		}
		if ok {
			planned = sub.Chip
		}
	}

	return chip.BuildStatus(used, planned), nil
}

// FinalizeChips turns the chips planned for gw into permanent usage records once
// the deadline has passed. Running it again records nothing new.
func (s *ChipService) FinalizeChips(ctx context.Context, gw int) (FinalizeChipsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChipService.FinalizeChips")
	defer span.End()

	info, err := s.gameweeks.Info(ctx, gw)
	if err != nil {
		return FinalizeChipsResult{}, err
	}
	now := s.now().UTC()
	if !info.Deadline.IsZero() && now.Before(info.Deadline) {
		return FinalizeChipsResult{}, fmt.Errorf("%w: gameweek %d deadline has not passed", ErrInvalidInput, gw)
	}

	subs, err := s.submissions.ListByGameweek(ctx, gw)
	if err != nil {
		return FinalizeChipsResult{}, fmt.Errorf("list submissions: %w", err)
	}

	result := FinalizeChipsResult{Gameweek: gw}
	for _, sub := range subs {
		if sub.Chip == chip.None {
			continue
		}
		inserted, err := s.chips.Record(ctx, chip.Usage{
			TeamID:   sub.TeamID,
			Chip:     sub.Chip,
			Gameweek: gw,
			UsedAt:   now,
		})
		if err != nil {
			return result, fmt.Errorf("record chip usage team=%d chip=%s: %w", sub.TeamID, sub.Chip, err)
		}
		if inserted {
			result.Recorded++
		} else {
			result.Existing++
		}
	}

	s.logger.InfoContext(ctx, "chips finalized", "gameweek", gw, "recorded", result.Recorded, "existing", result.Existing)
	return result, nil
}

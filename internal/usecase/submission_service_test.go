package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

// fixedGameweeks serves listed gameweeks as given; any other gameweek is a
// normal one whose deadline is a day away.
type fixedGameweeks map[int]gameweek.Info

func (f fixedGameweeks) Info(_ context.Context, gw int) (gameweek.Info, error) {
	if info, ok := f[gw]; ok {
		return info, nil
	}
	info := gameweek.DefaultInfo(gw)
	info.Deadline = submissionNow.Add(24 * time.Hour)
	return info, nil
}

type failingGameweeks struct {
	err error
}

func (f failingGameweeks) Info(context.Context, int) (gameweek.Info, error) {
	return gameweek.Info{}, f.err
}

var submissionNow = time.Date(2025, 9, 13, 10, 0, 0, 0, time.UTC)

func newSubmissionHarness(t *testing.T, gameweeks fixedGameweeks) (*harness, *SubmissionService) {
	t.Helper()

	h := newHarness(t)
	h.buySquad(t, 1)

	svc := NewSubmissionService(h.store.Submissions(), h.store.Chips(), h.store.Squads(), h.store.Players(), h.resolver, gameweeks, logging.NewNop())
	svc.now = func() time.Time { return submissionNow }
	return h, svc
}

func validSubmitInput(gw int) SubmitInput {
	return SubmitInput{
		TeamID:           1,
		Gameweek:         gw,
		Starting:         append([]int64(nil), squadStarting...),
		Bench:            append([]int64(nil), squadBench...),
		CaptainID:        328,
		ViceCaptainID:    355,
		ClubMultiplierID: squadClubID,
	}
}

func TestSubmissionService_SubmitCompliance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := newSubmissionHarness(t, fixedGameweeks{
		1: {Number: 1, Deadline: submissionNow.Add(time.Hour), Type: gameweek.TypeNormal},
		2: {Number: 2, Deadline: submissionNow.Add(-30 * time.Minute), Type: gameweek.TypeNormal},
		3: {Number: 3, Deadline: submissionNow.Add(-2 * time.Hour), Type: gameweek.TypeNormal},
	})

	got, err := svc.Submit(ctx, validSubmitInput(1))
	if err != nil {
		t.Fatalf("submit gameweek 1: %v", err)
	}
	if got.Compliance != gameweek.ComplianceOnTime || !got.SubmittedAt.Equal(submissionNow) {
		t.Fatalf("unexpected submission: %+v", got)
	}

	got, err = svc.Submit(ctx, validSubmitInput(2))
	if err != nil {
		t.Fatalf("submit gameweek 2: %v", err)
	}
	if got.Compliance != gameweek.ComplianceGracePeriod {
		t.Fatalf("expected grace period compliance, got %s", got.Compliance)
	}

	if _, err := svc.Submit(ctx, validSubmitInput(3)); !errors.Is(err, gameweek.ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
}

func TestSubmissionService_RejectsUnknownDeadline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, open := newSubmissionHarness(t, fixedGameweeks{})
	if _, err := open.Submit(ctx, validSubmitInput(1)); err != nil {
		t.Fatalf("submit while open: %v", err)
	}

	tests := []struct {
		name      string
		gameweeks gameweekInfoSource
		targetErr error
	}{
		{
			name:      "calendar unavailable",
			gameweeks: failingGameweeks{err: fmt.Errorf("%w: bootstrap timeout", ErrDependencyUnavailable)},
			targetErr: ErrDependencyUnavailable,
		},
		{
			name:      "gameweek not in calendar",
			gameweeks: failingGameweeks{err: fmt.Errorf("%w: gameweek 99", ErrNotFound)},
			targetErr: ErrNotFound,
		},
		{
			name:      "gameweek without deadline",
			gameweeks: fixedGameweeks{1: gameweek.DefaultInfo(1)},
			targetErr: ErrDependencyUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSubmissionService(h.store.Submissions(), h.store.Chips(), h.store.Squads(), h.store.Players(), h.resolver, tc.gameweeks, logging.NewNop())
			svc.now = func() time.Time { return submissionNow }

			if _, err := svc.Submit(ctx, validSubmitInput(1)); !errors.Is(err, tc.targetErr) {
				t.Fatalf("submit: expected %v, got %v", tc.targetErr, err)
			}
			if _, err := svc.SwapPlayers(ctx, SwapPlayersInput{TeamID: 1, Gameweek: 1, OutID: 366, InID: 311}); !errors.Is(err, tc.targetErr) {
				t.Fatalf("swap: expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestSubmissionService_SwapRejectedAfterGrace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameweeks := fixedGameweeks{1: {Number: 1, Deadline: submissionNow.Add(time.Hour), Type: gameweek.TypeNormal}}
	h, svc := newSubmissionHarness(t, gameweeks)
	if _, err := svc.Submit(ctx, validSubmitInput(1)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	closed := NewSubmissionService(h.store.Submissions(), h.store.Chips(), h.store.Squads(), h.store.Players(), h.resolver, gameweeks, logging.NewNop())
	closed.now = func() time.Time { return submissionNow.Add(3 * time.Hour) }
	if _, err := closed.SwapPlayers(ctx, SwapPlayersInput{TeamID: 1, Gameweek: 1, OutID: 366, InID: 311}); !errors.Is(err, gameweek.ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
}

func TestSubmissionService_SubmitValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := newSubmissionHarness(t, fixedGameweeks{
		4: {Number: 4, Deadline: submissionNow.Add(time.Hour), Type: gameweek.TypeBlank, MatchCount: 8},
	})

	tests := []struct {
		name      string
		mutate    func(in *SubmitInput)
		targetErr error
	}{
		{
			name:      "player not in squad",
			mutate:    func(in *SubmitInput) { in.Starting[1] = 5 },
			targetErr: gameweek.ErrInvalidSubmission,
		},
		{
			name:      "club not owned",
			mutate:    func(in *SubmitInput) { in.ClubMultiplierID = 13 },
			targetErr: gameweek.ErrInvalidSubmission,
		},
		{
			name: "two goalkeepers",
			mutate: func(in *SubmitInput) {
				in.Starting[10], in.Bench[0] = 47, 447
			},
			targetErr: lineup.ErrInvalidFormation,
		},
		{
			name:      "captain on bench",
			mutate:    func(in *SubmitInput) { in.CaptainID = 60 },
			targetErr: gameweek.ErrInvalidSubmission,
		},
		{
			name:      "short bench",
			mutate:    func(in *SubmitInput) { in.Bench = in.Bench[:3] },
			targetErr: gameweek.ErrInvalidSubmission,
		},
		{
			name:      "unknown chip",
			mutate:    func(in *SubmitInput) { in.Chip = "wildcard" },
			targetErr: chip.ErrInvalidChipUsage,
		},
		{
			name: "negative chip in blank gameweek",
			mutate: func(in *SubmitInput) {
				in.Gameweek = 4
				in.Chip = string(chip.NegativeChip)
			},
			targetErr: chip.ErrInvalidChipUsage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validSubmitInput(1)
			tc.mutate(&in)
			if _, err := svc.Submit(ctx, in); !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestSubmissionService_GetCarriesForwardWithoutChip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := newSubmissionHarness(t, fixedGameweeks{})

	in := validSubmitInput(2)
	in.Chip = string(chip.TripleCaptain)
	if _, err := svc.Submit(ctx, in); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, ok, err := svc.Get(ctx, 1, 5)
	if err != nil || !ok {
		t.Fatalf("get carried submission: ok=%v err=%v", ok, err)
	}
	if !got.IsDefault || got.Gameweek != 5 || got.Chip != chip.None || got.CaptainID != 328 {
		t.Fatalf("unexpected carried submission: %+v", got)
	}

	if _, ok, err := svc.Get(ctx, 1, 1); err != nil || ok {
		t.Fatalf("expected no submission before the first one: ok=%v err=%v", ok, err)
	}
}

func TestSubmissionService_SwapPlayers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := newSubmissionHarness(t, fixedGameweeks{})

	if _, err := svc.SwapPlayers(ctx, SwapPlayersInput{TeamID: 1, Gameweek: 1, OutID: 366, InID: 311}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without a submission, got %v", err)
	}
	if _, err := svc.Submit(ctx, validSubmitInput(1)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.SwapPlayers(ctx, SwapPlayersInput{TeamID: 1, Gameweek: 1, OutID: 366, InID: 311})
	if err != nil {
		t.Fatalf("swap defenders: %v", err)
	}
	if got.Starting[4] != 311 || got.Bench[1] != 366 {
		t.Fatalf("unexpected lineup after swap: starting=%v bench=%v", got.Starting, got.Bench)
	}

	if _, err := svc.SwapPlayers(ctx, SwapPlayersInput{TeamID: 1, Gameweek: 1, OutID: 447, InID: 47}); !errors.Is(err, lineup.ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation, got %v", err)
	}
	if _, err := svc.SwapPlayers(ctx, SwapPlayersInput{TeamID: 1, Gameweek: 1, OutID: 60, InID: 58}); !errors.Is(err, lineup.ErrInvalidSwap) {
		t.Fatalf("expected ErrInvalidSwap, got %v", err)
	}

	history, err := svc.History(ctx, 1, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].Starting[4] != 311 {
		t.Fatalf("expected newest-first history of two entries, got %+v", history)
	}
}

package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

func TestDraftService_InitializeOrderIsSnake(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	entries, err := h.drafts.InitializeOrder(ctx)
	if err != nil {
		t.Fatalf("initialize order: %v", err)
	}
	if len(entries) != 4*DefaultDraftRounds {
		t.Fatalf("expected %d positions, got %d", 4*DefaultDraftRounds, len(entries))
	}

	got := make([]int64, 0, 8)
	for _, e := range entries[:8] {
		got = append(got, e.TeamID)
	}
	if want := []int64{1, 2, 3, 4, 4, 3, 2, 1}; !slices.Equal(got, want) {
		t.Fatalf("unexpected first two rounds: got=%v want=%v", got, want)
	}

	if _, err := h.drafts.InitializeOrder(ctx); !errors.Is(err, draft.ErrOrderExists) {
		t.Fatalf("expected ErrOrderExists, got %v", err)
	}

	view, err := h.drafts.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.State.Active || view.State.CurrentTeamID != 1 || view.State.CurrentPosition != 1 {
		t.Fatalf("unexpected initial state: %+v", view.State)
	}
}

func TestDraftService_StartAndAdvance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	if _, err := h.drafts.Start(ctx); !errors.Is(err, draft.ErrOrderEmpty) {
		t.Fatalf("expected ErrOrderEmpty before initialization, got %v", err)
	}
	h.startDraft(t)
	if _, err := h.drafts.Start(ctx); !errors.Is(err, draft.ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}

	var turns []int64
	for range 5 {
		result, err := h.drafts.Advance(ctx)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		turns = append(turns, result.TeamID)
	}
	if want := []int64{2, 3, 4, 4, 3}; !slices.Equal(turns, want) {
		t.Fatalf("unexpected turns: got=%v want=%v", turns, want)
	}

	ok, err := h.drafts.CanStartAuction(ctx, 3)
	if err != nil || !ok {
		t.Fatalf("expected team 3 to hold the turn: ok=%v err=%v", ok, err)
	}
}

func TestDraftService_AdvanceSkipsCompleteSquads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.startDraft(t)
	h.buy(t, 3, squad.KindPlayer, salahID)

	onePlayer := NewDraftService(h.store.Drafts(), h.store.Teams(), h.store.Squads(), h.resolver, squad.Rules{MaxPlayers: 1}, DraftConfig{}, h.publisher, nil, logging.NewNop())
	result, err := onePlayer.Advance(ctx)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !result.HasNext || result.TeamID != 4 || result.Position != 4 || !slices.Equal(result.Skipped, []int64{3}) {
		t.Fatalf("expected team 3 to be skipped, got %+v", result)
	}
}

func TestDraftService_AdvanceCompletesDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.startDraft(t)
	h.publisher.reset()

	everyoneDone := NewDraftService(h.store.Drafts(), h.store.Teams(), h.store.Squads(), h.resolver, squad.Rules{}, DraftConfig{}, h.publisher, nil, logging.NewNop())
	result, err := everyoneDone.Advance(ctx)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !result.Completed || result.HasNext {
		t.Fatalf("expected draft completion, got %+v", result)
	}
	if got := h.publisher.types(); !slices.Equal(got, []string{broadcast.EventDraftCompleted}) {
		t.Fatalf("unexpected events: %v", got)
	}

	view, err := h.drafts.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.State.Active || view.State.EndedAt == nil || view.State.CurrentPosition != view.State.TotalPositions {
		t.Fatalf("unexpected completed state: %+v", view.State)
	}
	if _, err := h.drafts.Advance(ctx); !errors.Is(err, draft.ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
	if _, err := h.drafts.Start(ctx); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected restart of a completed draft to be rejected, got %v", err)
	}
}

func TestDraftService_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.startDraft(t)
	h.buy(t, 2, squad.KindPlayer, salahID)

	if err := h.drafts.Reset(ctx, 0); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := h.budget(t, 2); got != 1000 {
		t.Fatalf("expected budget restored, got %d", got)
	}
	view, err := h.drafts.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if len(view.Order) != 0 || view.State.Active {
		t.Fatalf("expected empty draft after reset, got %+v", view)
	}
	completed, err := h.auctions.ListCompleted(ctx)
	if err != nil || len(completed) != 0 {
		t.Fatalf("expected no auctions after reset: n=%d err=%v", len(completed), err)
	}

	h.startDraft(t)
}

func TestDraftService_CreateAndActivate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	if _, err := h.drafts.Create(ctx, CreateDraftInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	first, err := h.resolver.Active(ctx)
	if err != nil {
		t.Fatalf("resolve default draft: %v", err)
	}
	second, err := h.drafts.Create(ctx, CreateDraftInput{Name: "Second Season", Activate: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := h.drafts.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.Draft.ID != second.ID {
		t.Fatalf("expected new draft active, got %+v", view.Draft)
	}

	if err := h.drafts.SetActive(ctx, first.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := h.drafts.SetActive(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	drafts, err := h.drafts.List(ctx)
	if err != nil || len(drafts) != 2 {
		t.Fatalf("expected two drafts: n=%d err=%v", len(drafts), err)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	teammock "github.com/riskibarqy/fantasy-auction/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestTeamService_ResolveByUserUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, nil, nil, nil, nil)

	teamRepo.
		On("GetByUserID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "user-kop").
		Return(team.Team{ID: 2, Name: "Anfield Anarchy", UserID: "user-kop"}, true, nil).
		Once()
	teamRepo.
		On("GetByUserID", mock.Anything, "user-stranger").
		Return(team.Team{}, false, nil).
		Once()

	got, err := service.ResolveByUser(ctx, "user-kop")
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("unexpected team: %+v", got)
	}

	if _, err := service.ResolveByUser(ctx, "user-stranger"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := service.ResolveByUser(ctx, "  "); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTeamService_Squads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.startDraft(t)
	h.buy(t, 2, squad.KindPlayer, salahID)
	h.buy(t, 2, squad.KindClub, 12)

	view, err := h.teams.Squad(ctx, 2)
	if err != nil {
		t.Fatalf("squad: %v", err)
	}
	if len(view.Players) != 1 || view.Players[0].ClubName != "Liverpool" {
		t.Fatalf("unexpected players: %+v", view.Players)
	}
	if len(view.Clubs) != 1 || view.Clubs[0].Club.Name != "Liverpool" {
		t.Fatalf("unexpected clubs: %+v", view.Clubs)
	}
	if view.TotalSpent != 15 || view.SlotsRemaining != squad.TotalSlots-2 {
		t.Fatalf("unexpected totals: spent=%d slots=%d", view.TotalSpent, view.SlotsRemaining)
	}
	if view.Team.Budget != 985 || view.MaxAllowedBid != 985-5*14 {
		t.Fatalf("unexpected budget view: budget=%d max=%d", view.Team.Budget, view.MaxAllowedBid)
	}

	all, err := h.teams.AllSquads(ctx)
	if err != nil {
		t.Fatalf("all squads: %v", err)
	}
	if len(all) != 4 || all[0].Team.ID != 1 || len(all[0].Players) != 0 || len(all[1].Players) != 1 {
		t.Fatalf("unexpected squads: %+v", all)
	}

	if _, err := h.teams.Squad(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

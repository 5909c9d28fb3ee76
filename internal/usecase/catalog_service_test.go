package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type stubCatalogSource struct {
	players []player.Player
	clubs   []club.Club
	err     error
}

func (s stubCatalogSource) Catalog(context.Context) ([]player.Player, []club.Club, error) {
	return s.players, s.clubs, s.err
}

func TestCatalogService_ListPlayers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.startDraft(t)
	h.buy(t, 2, squad.KindPlayer, salahID)

	svc := NewCatalogService(h.store.Players(), h.store.Clubs(), h.store.Squads(), h.resolver, nil, logging.NewNop())

	got, err := svc.ListPlayers(ctx, PlayerFilter{Position: "mid", ClubID: 12})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(got) != 2 || got[0].Player.ID != salahID || got[0].OwnerTeamID != 2 || got[1].ClubName != "Liverpool" {
		t.Fatalf("unexpected players: %+v", got)
	}

	got, err = svc.ListPlayers(ctx, PlayerFilter{Position: "MID", ClubID: 12, AvailableOnly: true})
	if err != nil {
		t.Fatalf("list available players: %v", err)
	}
	if len(got) != 1 || got[0].Player.ID != 351 {
		t.Fatalf("expected only Gakpo available, got %+v", got)
	}

	got, err = svc.ListPlayers(ctx, PlayerFilter{Search: "haal"})
	if err != nil {
		t.Fatalf("search players: %v", err)
	}
	if len(got) != 1 || got[0].Player.ID != haalandID {
		t.Fatalf("unexpected search result: %+v", got)
	}

	if _, err := svc.ListPlayers(ctx, PlayerFilter{Position: "keeper"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCatalogService_ListClubs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.startDraft(t)
	h.buy(t, 3, squad.KindClub, 13)

	svc := NewCatalogService(h.store.Players(), h.store.Clubs(), h.store.Squads(), h.resolver, nil, logging.NewNop())
	clubs, err := svc.ListClubs(ctx)
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	if len(clubs) != 20 {
		t.Fatalf("expected 20 clubs, got %d", len(clubs))
	}
	for _, c := range clubs {
		want := int64(0)
		if c.Club.ID == 13 {
			want = 3
		}
		if c.OwnerTeamID != want {
			t.Fatalf("unexpected owner for club %d: %d", c.Club.ID, c.OwnerTeamID)
		}
	}
}

func TestCatalogService_Sync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	source := stubCatalogSource{
		clubs: []club.Club{
			{ID: 21, Name: "Sunderland", ShortName: "SUN"},
			{ID: 0, Name: "Nobody"},
		},
		players: []player.Player{
			{ID: 700, WebName: "Isidor", FullName: "Wilson Isidor", Position: player.PositionForward, ClubID: 21, Price: 55},
			{ID: 701, FullName: "Unnamed", Position: player.PositionDefender, ClubID: 21},
		},
	}
	svc := NewCatalogService(h.store.Players(), h.store.Clubs(), h.store.Squads(), h.resolver, source, logging.NewNop())

	result, err := svc.Sync(ctx)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Players != 1 || result.Clubs != 1 || result.Skipped != 2 {
		t.Fatalf("unexpected sync result: %+v", result)
	}

	got, err := svc.ListPlayers(ctx, PlayerFilter{ClubID: 21})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(got) != 1 || got[0].ClubName != "Sunderland" {
		t.Fatalf("unexpected synced players: %+v", got)
	}

	failing := NewCatalogService(h.store.Players(), h.store.Clubs(), h.store.Squads(), h.resolver, stubCatalogSource{err: errors.New("timeout")}, logging.NewNop())
	if _, err := failing.Sync(ctx); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	unconfigured := NewCatalogService(h.store.Players(), h.store.Clubs(), h.store.Squads(), h.resolver, nil, logging.NewNop())
	if _, err := unconfigured.Sync(ctx); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

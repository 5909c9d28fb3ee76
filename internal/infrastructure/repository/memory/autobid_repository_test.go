package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
)

func TestAutoBidRepository_UpsertKeepsListPosition(t *testing.T) {
	store := NewStore(DefaultSeed())
	repo := store.AutoBids()
	ctx := context.Background()

	first := autobid.Config{TeamID: 2, Enabled: true, CreatedAt: testNow, Instructions: []autobid.Instruction{{PlayerID: 328, MaxBid: 40}}}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert team 2: %v", err)
	}
	if err := repo.Upsert(ctx, autobid.Config{TeamID: 1, CreatedAt: testNow}); err != nil {
		t.Fatalf("upsert team 1: %v", err)
	}

	updated := first
	updated.Enabled = false
	updated.CreatedAt = testNow.Add(time.Hour)
	updated.UpdatedAt = testNow.Add(time.Hour)
	if err := repo.Upsert(ctx, updated); err != nil {
		t.Fatalf("re-upsert team 2: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].TeamID != 2 || list[1].TeamID != 1 {
		t.Fatalf("expected teams [2 1] in first-saved order, got %+v", list)
	}
	if list[0].Enabled || !list[0].CreatedAt.Equal(testNow) {
		t.Fatalf("expected update to keep creation time, got %+v", list[0])
	}

	list[0].Instructions[0].MaxBid = 999
	got, ok, err := repo.GetByTeam(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("get team 2: ok=%v err=%v", ok, err)
	}
	if got.Instructions[0].MaxBid != 40 {
		t.Fatalf("listed config shares instructions with the store, max bid %d", got.Instructions[0].MaxBid)
	}

	if _, ok, err := repo.GetByTeam(ctx, 3); err != nil || ok {
		t.Fatalf("expected no config for team 3, ok=%v err=%v", ok, err)
	}
}

package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

// racingAuctions lets another bidder commit between the service's read and
// its conditional write.
type racingAuctions struct {
	auction.Repository
	beforeApply func(ctx context.Context)
	applyCalls  int
}

func (r *racingAuctions) ApplyBid(ctx context.Context, auctionID, expectedVersion int64, bid auction.Bid) (auction.Auction, error) {
	r.applyCalls++
	if r.beforeApply != nil {
		r.beforeApply(ctx)
	}
	return r.Repository.ApplyBid(ctx, auctionID, expectedVersion, bid)
}

// newRacingAuctionService opens an auction for team 1 and returns a service
// whose writes go through a racingAuctions wrapper.
func newRacingAuctionService(t *testing.T) (*harness, *racingAuctions, *AuctionService, int64) {
	t.Helper()

	h := newHarness(t)
	h.startDraft(t)
	view, err := h.auctions.StartAuction(context.Background(), StartAuctionInput{TeamID: 1, Kind: squad.KindPlayer, SubjectID: salahID})
	if err != nil {
		t.Fatalf("start auction: %v", err)
	}

	racing := &racingAuctions{Repository: h.store.Auctions()}
	svc := NewAuctionService(racing, h.store.Teams(), h.store.Players(), h.store.Clubs(), h.store.Squads(), h.drafts, h.resolver, h.breaks, squad.DefaultRules(), h.publisher, nil, logging.NewNop())
	return h, racing, svc, view.Auction.ID
}

func commitCompetingBid(t *testing.T, repo auction.Repository, auctionID, teamID, amount int64) {
	t.Helper()

	ctx := context.Background()
	current, ok, err := repo.GetByID(ctx, auctionID)
	if err != nil || !ok {
		t.Fatalf("get auction: ok=%v err=%v", ok, err)
	}
	if _, err := repo.ApplyBid(ctx, auctionID, current.Version, auction.Bid{TeamID: teamID, Amount: amount, CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("competing bid %d by team %d: %v", amount, teamID, err)
	}
}

func bidTrail(t *testing.T, h *harness, auctionID int64) []int64 {
	t.Helper()

	bids, err := h.store.Auctions().ListBids(context.Background(), auctionID)
	if err != nil {
		t.Fatalf("list bids: %v", err)
	}
	out := make([]int64, 0, len(bids))
	for _, b := range bids {
		out = append(out, b.Amount)
	}
	return out
}

func TestAuctionService_PlaceBidRevalidatesAfterConcurrentCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("still highest after re-read", func(t *testing.T) {
		h, racing, svc, id := newRacingAuctionService(t)
		inner := h.store.Auctions()
		racing.beforeApply = func(context.Context) {
			racing.beforeApply = nil
			commitCompetingBid(t, inner, id, 3, 10)
		}

		got, err := svc.PlaceBid(ctx, PlaceBidInput{AuctionID: id, TeamID: 2, Amount: 20})
		if err != nil {
			t.Fatalf("place bid: %v", err)
		}
		if got.CurrentBid != 20 || got.CurrentBidderID != 2 || racing.applyCalls != 2 {
			t.Fatalf("expected retried commit, got auction=%+v calls=%d", got, racing.applyCalls)
		}
		if trail := bidTrail(t, h, id); !slices.Equal(trail, []int64{5, 10, 20}) {
			t.Fatalf("bid history out of commit order: %v", trail)
		}
	})

	t.Run("overtaken while in flight", func(t *testing.T) {
		h, racing, svc, id := newRacingAuctionService(t)
		inner := h.store.Auctions()
		racing.beforeApply = func(context.Context) {
			racing.beforeApply = nil
			commitCompetingBid(t, inner, id, 3, 25)
		}

		_, err := svc.PlaceBid(ctx, PlaceBidInput{AuctionID: id, TeamID: 2, Amount: 20})
		if !errors.Is(err, auction.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if racing.applyCalls != 1 {
			t.Fatalf("overtaken bid must not be written again, calls=%d", racing.applyCalls)
		}
		if trail := bidTrail(t, h, id); !slices.Equal(trail, []int64{5, 25}) {
			t.Fatalf("unexpected bid history: %v", trail)
		}
	})

	t.Run("gives up after retries", func(t *testing.T) {
		h, racing, svc, id := newRacingAuctionService(t)
		inner := h.store.Auctions()
		next := int64(10)
		racing.beforeApply = func(context.Context) {
			commitCompetingBid(t, inner, id, 3, next)
			next += 5
		}

		_, err := svc.PlaceBid(ctx, PlaceBidInput{AuctionID: id, TeamID: 2, Amount: 50})
		if !errors.Is(err, auction.ErrStaleAuction) {
			t.Fatalf("expected ErrStaleAuction, got %v", err)
		}
		if racing.applyCalls != defaultBidRetries {
			t.Fatalf("expected %d attempts, got %d", defaultBidRetries, racing.applyCalls)
		}
		if trail := bidTrail(t, h, id); !slices.Equal(trail, []int64{5, 10, 15, 20}) {
			t.Fatalf("unexpected bid history: %v", trail)
		}
	})

	t.Run("automated bid is left to the next tick", func(t *testing.T) {
		h, racing, svc, id := newRacingAuctionService(t)
		inner := h.store.Auctions()
		racing.beforeApply = func(context.Context) {
			racing.beforeApply = nil
			commitCompetingBid(t, inner, id, 3, 10)
		}

		_, err := svc.placeBid(ctx, PlaceBidInput{AuctionID: id, TeamID: 2, Amount: 15}, true)
		if !errors.Is(err, auction.ErrStaleAuction) {
			t.Fatalf("expected ErrStaleAuction, got %v", err)
		}
		if racing.applyCalls != 1 {
			t.Fatalf("automated bid must not retry, calls=%d", racing.applyCalls)
		}
		if trail := bidTrail(t, h, id); !slices.Equal(trail, []int64{5, 10}) {
			t.Fatalf("unexpected bid history: %v", trail)
		}
	})
}

func TestAutoBidEngine_TickStopsOnStaleAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, racing, svc, id := newRacingAuctionService(t)
	saveInstruction(t, h, 2, salahID, 50)
	saveInstruction(t, h, 3, salahID, 50)

	inner := h.store.Auctions()
	racing.beforeApply = func(context.Context) {
		racing.beforeApply = nil
		commitCompetingBid(t, inner, id, 4, 10)
	}

	store := h.store
	engine := NewAutoBidEngine(store.AutoBids(), store.Auctions(), store.Teams(), store.Players(), store.Squads(), svc, h.breaks, squad.DefaultRules(), nil, nil, AutoBidConfig{}, logging.NewNop())

	got, err := engine.Tick(ctx)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got.Placed || racing.applyCalls != 1 {
		t.Fatalf("expected the tick to end after a stale bid, got %+v calls=%d", got, racing.applyCalls)
	}

	got, err = engine.Tick(ctx)
	if err != nil {
		t.Fatalf("second tick: %v", err)
	}
	if want := (autobid.TickResult{Placed: true, TeamID: 2, Amount: 15, AuctionID: id}); got != want {
		t.Fatalf("expected %+v on the next tick, got %+v", want, got)
	}
}

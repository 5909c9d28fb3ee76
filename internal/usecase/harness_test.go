package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt broadcast.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, evt := range p.events {
		out = append(out, evt.Type)
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type harness struct {
	store     *memory.Store
	publisher *recordingPublisher
	resolver  *DraftResolver
	drafts    *DraftService
	breaks    *BreakService
	auctions  *AuctionService
	autobids  *AutoBidEngine
	teams     *TeamService
}

// newHarness wires the auction room over the seeded memory store. The draft
// order is never shuffled, so teams nominate in seed order 1, 2, 3, 4.
func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore(memory.DefaultSeed())
	publisher := &recordingPublisher{}
	logger := logging.NewNop()
	rules := squad.DefaultRules()

	resolver := NewDraftResolver(store.Drafts())
	drafts := NewDraftService(store.Drafts(), store.Teams(), store.Squads(), resolver, rules, DraftConfig{}, publisher, nil, logger)
	drafts.shuffle = func(ids []int64) []int64 { return ids }
	breaks := NewBreakService(publisher, nil, logger)
	auctions := NewAuctionService(store.Auctions(), store.Teams(), store.Players(), store.Clubs(), store.Squads(), drafts, resolver, breaks, rules, publisher, nil, logger)
	autobids := NewAutoBidEngine(store.AutoBids(), store.Auctions(), store.Teams(), store.Players(), store.Squads(), auctions, breaks, rules, nil, nil, AutoBidConfig{}, logger)

	return &harness{
		store:     store,
		publisher: publisher,
		resolver:  resolver,
		drafts:    drafts,
		breaks:    breaks,
		auctions:  auctions,
		autobids:  autobids,
		teams:     NewTeamService(store.Teams(), store.Squads(), store.Players(), store.Clubs(), resolver),
	}
}

func (h *harness) startDraft(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	if _, err := h.drafts.InitializeOrder(ctx); err != nil {
		t.Fatalf("initialize order: %v", err)
	}
	if _, err := h.drafts.Start(ctx); err != nil {
		t.Fatalf("start draft: %v", err)
	}
}

func (h *harness) budget(t *testing.T, teamID int64) int64 {
	t.Helper()

	got, ok, err := h.store.Teams().GetByID(context.Background(), teamID)
	if err != nil || !ok {
		t.Fatalf("get team %d: ok=%v err=%v", teamID, ok, err)
	}
	return got.Budget
}

// buy hands subjectID to teamID through a full auction opened by whichever
// team holds the turn.
func (h *harness) buy(t *testing.T, teamID int64, kind squad.Kind, subjectID int64) {
	t.Helper()

	ctx := context.Background()
	view, err := h.drafts.State(ctx)
	if err != nil {
		t.Fatalf("draft state: %v", err)
	}
	opener := view.State.CurrentTeamID
	started, err := h.auctions.StartAuction(ctx, StartAuctionInput{TeamID: opener, Kind: kind, SubjectID: subjectID})
	if err != nil {
		t.Fatalf("start auction for %s %d: %v", kind, subjectID, err)
	}
	if opener != teamID {
		if _, err := h.auctions.PlaceBid(ctx, PlaceBidInput{AuctionID: started.Auction.ID, TeamID: teamID, Amount: 10}); err != nil {
			t.Fatalf("bid for %s %d: %v", kind, subjectID, err)
		}
	}
	if _, err := h.auctions.CompleteAuction(ctx, started.Auction.ID); err != nil {
		t.Fatalf("complete auction for %s %d: %v", kind, subjectID, err)
	}
}

// Team 1's fifteen players and Liverpool. The starting eleven is a 4-4-2.
var (
	squadStarting = []int64{1, 3, 201, 330, 366, 17, 182, 328, 372, 355, 447}
	squadBench    = []int64{47, 311, 60, 58}
	squadClubID   = int64(12)
)

func (h *harness) buySquad(t *testing.T, teamID int64) {
	t.Helper()

	h.startDraft(t)
	for _, id := range append(append([]int64(nil), squadStarting...), squadBench...) {
		h.buy(t, teamID, squad.KindPlayer, id)
	}
	h.buy(t, teamID, squad.KindClub, squadClubID)
}

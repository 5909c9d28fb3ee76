package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
)

type AuctionRepository struct {
	s *Store
}

func (r *AuctionRepository) GetByID(_ context.Context, auctionID int64) (auction.Auction, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.auctions[auctionID]
	return a, ok, nil
}

func (r *AuctionRepository) GetActive(_ context.Context) (auction.Auction, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.activeAuctionLocked()
	return a, ok, nil
}

func (r *AuctionRepository) ListCompleted(_ context.Context, draftID int64) ([]auction.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]auction.Auction, 0)
	for _, id := range r.s.auctionOrder {
		a := r.s.auctions[id]
		if a.DraftID == draftID && a.Status == auction.StatusCompleted {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AuctionRepository) ListBids(_ context.Context, auctionID int64) ([]auction.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]auction.Bid(nil), r.s.bids[auctionID]...), nil
}

func (r *AuctionRepository) Create(_ context.Context, a auction.Auction, opening auction.Bid) (auction.Auction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if active, ok := r.s.activeAuctionLocked(); ok {
		return auction.Auction{}, fmt.Errorf("%w: auction %d is active", auction.ErrAuctionInProgress, active.ID)
	}
	if _, _, owned := r.s.findItemLocked(a.DraftID, a.Kind, a.SubjectID); owned {
		return auction.Auction{}, fmt.Errorf("%w: %s", auction.ErrAlreadyOwned, squad.SubjectKey(a.Kind, a.SubjectID))
	}

	r.s.nextAuctionID++
	a.ID = r.s.nextAuctionID
	r.s.auctions[a.ID] = a
	r.s.auctionOrder = append(r.s.auctionOrder, a.ID)

	opening.AuctionID = a.ID
	r.s.appendBidLocked(opening)
	return a, nil
}

func (r *AuctionRepository) ApplyBid(_ context.Context, auctionID, expectedVersion int64, bid auction.Bid) (auction.Auction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.auctions[auctionID]
	if !ok {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrNotFound, auctionID)
	}
	if !a.IsActive() {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrAuctionNotActive, auctionID)
	}
	if a.Version != expectedVersion {
		return auction.Auction{}, fmt.Errorf("%w: auction %d at version %d, expected %d", auction.ErrStaleAuction, auctionID, a.Version, expectedVersion)
	}
	if err := auction.ValidateBidAmount(a, bid.Amount); err != nil {
		return auction.Auction{}, err
	}

	a.CurrentBid = bid.Amount
	a.CurrentBidderID = bid.TeamID
	a.SellingStage = auction.SellingStageNone
	a.WaitRequestedBy = 0
	a.BidCount++
	a.Version++
	a.UpdatedAt = bid.CreatedAt
	r.s.auctions[a.ID] = a

	bid.AuctionID = a.ID
	r.s.appendBidLocked(bid)
	return a, nil
}

func (r *AuctionRepository) Complete(_ context.Context, auctionID int64, completedAt time.Time) (auction.Auction, squad.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.auctions[auctionID]
	if !ok {
		return auction.Auction{}, squad.Item{}, fmt.Errorf("%w: auction %d", auction.ErrNotFound, auctionID)
	}
	if !a.IsActive() {
		return auction.Auction{}, squad.Item{}, fmt.Errorf("%w: auction %d", auction.ErrAuctionNotActive, auctionID)
	}
	if !a.HasBidder() {
		return auction.Auction{}, squad.Item{}, fmt.Errorf("%w: auction %d", auction.ErrNoBids, auctionID)
	}
	winner, ok := r.s.teams[a.CurrentBidderID]
	if !ok {
		return auction.Auction{}, squad.Item{}, fmt.Errorf("winning team %d not found", a.CurrentBidderID)
	}
	if winner.Budget < a.CurrentBid {
		return auction.Auction{}, squad.Item{}, fmt.Errorf("%w: team %d has %d, price %d", auction.ErrInsufficientBudget, winner.ID, winner.Budget, a.CurrentBid)
	}
	if _, _, owned := r.s.findItemLocked(a.DraftID, a.Kind, a.SubjectID); owned {
		return auction.Auction{}, squad.Item{}, fmt.Errorf("%w: %s", auction.ErrAlreadyOwned, squad.SubjectKey(a.Kind, a.SubjectID))
	}

	item := squad.Item{
		DraftID:    a.DraftID,
		TeamID:     winner.ID,
		Kind:       a.Kind,
		SubjectID:  a.SubjectID,
		PricePaid:  a.CurrentBid,
		AcquiredAt: completedAt,
	}
	r.s.squadItems[a.DraftID] = append(r.s.squadItems[a.DraftID], item)

	winner.Budget -= a.CurrentBid
	r.s.teams[winner.ID] = winner

	a.Status = auction.StatusCompleted
	a.SellingStage = auction.SellingStageNone
	a.WaitRequestedBy = 0
	a.CompletedAt = &completedAt
	a.UpdatedAt = completedAt
	a.Version++
	r.s.auctions[a.ID] = a

	return a, item, nil
}

func (r *AuctionRepository) Restart(_ context.Context, auctionID int64, at time.Time) (auction.Auction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.auctions[auctionID]
	if !ok {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrNotFound, auctionID)
	}
	if a.Status != auction.StatusCompleted {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrNotCompleted, auctionID)
	}
	if active, ok := r.s.activeAuctionLocked(); ok {
		return auction.Auction{}, fmt.Errorf("%w: auction %d is active", auction.ErrAuctionInProgress, active.ID)
	}

	if item, idx, owned := r.s.findItemLocked(a.DraftID, a.Kind, a.SubjectID); owned {
		items := r.s.squadItems[a.DraftID]
		r.s.squadItems[a.DraftID] = append(items[:idx:idx], items[idx+1:]...)
		if t, ok := r.s.teams[item.TeamID]; ok {
			t.Budget += item.PricePaid
			r.s.teams[t.ID] = t
		}
	}

	a.Status = auction.StatusActive
	a.CompletedAt = nil
	a.SellingStage = auction.SellingStageNone
	a.WaitRequestedBy = 0
	a.RestartCount++
	a.UpdatedAt = at
	a.Version++
	r.s.auctions[a.ID] = a
	return a, nil
}

func (r *AuctionRepository) CancelLastBid(_ context.Context, auctionID int64, at time.Time) (auction.Auction, auction.Bid, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.auctions[auctionID]
	if !ok {
		return auction.Auction{}, auction.Bid{}, fmt.Errorf("%w: auction %d", auction.ErrNotFound, auctionID)
	}
	if !a.IsActive() {
		return auction.Auction{}, auction.Bid{}, fmt.Errorf("%w: auction %d", auction.ErrAuctionNotActive, auctionID)
	}
	bids := r.s.bids[auctionID]
	if len(bids) <= 1 {
		return auction.Auction{}, auction.Bid{}, fmt.Errorf("%w: only the opening bid remains on auction %d", auction.ErrNoBids, auctionID)
	}

	removed := bids[len(bids)-1]
	bids = bids[:len(bids)-1]
	r.s.bids[auctionID] = bids
	prior := bids[len(bids)-1]

	a.CurrentBid = prior.Amount
	a.CurrentBidderID = prior.TeamID
	a.BidCount = len(bids)
	a.SellingStage = auction.SellingStageNone
	a.WaitRequestedBy = 0
	a.UpdatedAt = at
	a.Version++
	r.s.auctions[a.ID] = a
	return a, removed, nil
}

func (r *AuctionRepository) UpdateCeremony(_ context.Context, auctionID int64, stage auction.SellingStage, waitRequestedBy int64, at time.Time) (auction.Auction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.auctions[auctionID]
	if !ok {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrNotFound, auctionID)
	}
	if !a.IsActive() {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrAuctionNotActive, auctionID)
	}

	a.SellingStage = stage
	a.WaitRequestedBy = waitRequestedBy
	a.UpdatedAt = at
	a.Version++
	r.s.auctions[a.ID] = a
	return a, nil
}

func (s *Store) activeAuctionLocked() (auction.Auction, bool) {
	for _, id := range s.auctionOrder {
		if a := s.auctions[id]; a.IsActive() {
			return a, true
		}
	}
	return auction.Auction{}, false
}

func (s *Store) appendBidLocked(b auction.Bid) {
	s.nextBidID++
	b.ID = s.nextBidID
	s.bids[b.AuctionID] = append(s.bids[b.AuctionID], b)
}

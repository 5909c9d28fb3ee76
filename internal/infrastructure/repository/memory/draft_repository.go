package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
)

type DraftRepository struct {
	s *Store
}

func (r *DraftRepository) List(_ context.Context) ([]draft.Draft, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]draft.Draft(nil), r.s.drafts...), nil
}

func (r *DraftRepository) GetActive(_ context.Context) (draft.Draft, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.drafts {
		if d.IsActive {
			return d, true, nil
		}
	}
	return draft.Draft{}, false, nil
}

// Create stores d with a new ID. An active d deactivates every other draft.
func (r *DraftRepository) Create(_ context.Context, d draft.Draft) (draft.Draft, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextDraftID++
	d.ID = r.s.nextDraftID
	if d.IsActive {
		r.deactivateAllLocked()
	}
	r.s.drafts = append(r.s.drafts, d)
	return d, nil
}

func (r *DraftRepository) SetActive(_ context.Context, draftID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idx := -1
	for i, d := range r.s.drafts {
		if d.ID == draftID {
			idx = i
		}
	}
	if idx < 0 {
		return fmt.Errorf("draft %d not found", draftID)
	}
	r.deactivateAllLocked()
	r.s.drafts[idx].IsActive = true
	return nil
}

func (r *DraftRepository) deactivateAllLocked() {
	for i := range r.s.drafts {
		r.s.drafts[i].IsActive = false
	}
}

func (r *DraftRepository) ListOrder(_ context.Context, draftID int64) ([]draft.OrderEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]draft.OrderEntry(nil), r.s.orders[draftID]...), nil
}

func (r *DraftRepository) InitializeOrder(_ context.Context, draftID int64, entries []draft.OrderEntry, state draft.State) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.orders[draftID]) > 0 {
		return fmt.Errorf("%w: draft %d", draft.ErrOrderExists, draftID)
	}
	r.s.orders[draftID] = append([]draft.OrderEntry(nil), entries...)
	r.s.states[draftID] = state
	return nil
}

func (r *DraftRepository) GetState(_ context.Context, draftID int64) (draft.State, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.states[draftID]
	return st, ok, nil
}

func (r *DraftRepository) SaveState(_ context.Context, state draft.State) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.states[state.DraftID] = state
	return nil
}

func (r *DraftRepository) Reset(_ context.Context, draftID int64, startingBudget int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.auctionOrder[:0]
	for _, id := range r.s.auctionOrder {
		if r.s.auctions[id].DraftID == draftID {
			delete(r.s.auctions, id)
			delete(r.s.bids, id)
			continue
		}
		kept = append(kept, id)
	}
	r.s.auctionOrder = kept

	delete(r.s.squadItems, draftID)
	delete(r.s.orders, draftID)
	delete(r.s.states, draftID)

	for id, t := range r.s.teams {
		t.Budget = startingBudget
		r.s.teams[id] = t
	}
	return nil
}

package draft

import "context"

// Repository exposes draft, order and state persistence.
type Repository interface {
	List(ctx context.Context) ([]Draft, error)
	GetActive(ctx context.Context) (Draft, bool, error)
	Create(ctx context.Context, d Draft) (Draft, error)
	SetActive(ctx context.Context, draftID int64) error

	ListOrder(ctx context.Context, draftID int64) ([]OrderEntry, error)
	// InitializeOrder stores entries and state in one unit. It fails with
	// ErrOrderExists when the draft already has an order.
	InitializeOrder(ctx context.Context, draftID int64, entries []OrderEntry, state State) error
	GetState(ctx context.Context, draftID int64) (State, bool, error)
	SaveState(ctx context.Context, state State) error
	// Reset removes auctions, bids, squad items, order and state of a draft and
	// sets every team budget to startingBudget, all in one unit.
	Reset(ctx context.Context, draftID int64, startingBudget int64) error
}

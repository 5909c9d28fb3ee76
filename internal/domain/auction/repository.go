package auction

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
)

// Repository is the auction ledger. Every write is atomic with its budget and
// squad side effects, and every write bumps Auction.Version.
type Repository interface {
	GetByID(ctx context.Context, auctionID int64) (Auction, bool, error)
	GetActive(ctx context.Context) (Auction, bool, error)
	ListCompleted(ctx context.Context, draftID int64) ([]Auction, error)
	ListBids(ctx context.Context, auctionID int64) ([]Bid, error)

	// Create fails with ErrAuctionInProgress when any auction is active and with
	// ErrAlreadyOwned when the subject already has a squad item in the draft.
	Create(ctx context.Context, a Auction, opening Bid) (Auction, error)
	// ApplyBid commits bid only if the stored version equals expectedVersion,
	// otherwise it fails with ErrStaleAuction.
	ApplyBid(ctx context.Context, auctionID, expectedVersion int64, bid Bid) (Auction, error)
	// Complete writes the squad item, decrements the winner budget and marks the
	// auction completed. The budget must cover the price.
	Complete(ctx context.Context, auctionID int64, completedAt time.Time) (Auction, squad.Item, error)
	// Restart reopens a completed auction at its final bid, refunding the winner
	// and removing the squad item.
	Restart(ctx context.Context, auctionID int64, at time.Time) (Auction, error)
	// CancelLastBid removes the newest bid and restores the previous one.
	CancelLastBid(ctx context.Context, auctionID int64, at time.Time) (Auction, Bid, error)
	// UpdateCeremony sets the advisory selling stage and wait request.
	UpdateCeremony(ctx context.Context, auctionID int64, stage SellingStage, waitRequestedBy int64, at time.Time) (Auction, error)
}

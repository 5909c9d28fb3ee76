package auction

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
)

const (
	// MinBid is the opening bid and the bid increment unit.
	MinBid       int64 = 5
	BidIncrement int64 = 5
)

var (
	ErrNotFound           = errors.New("auction not found")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrAuctionInProgress  = errors.New("auction already in progress")
	ErrAlreadyOwned       = errors.New("subject already owned")
	ErrInvalidAmount      = errors.New("invalid bid amount")
	ErrAuctionNotActive   = errors.New("auction not active")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrNoBids             = errors.New("auction has no bids")
	ErrNotCompleted       = errors.New("auction is not completed")
	ErrInvalidStage       = errors.New("invalid selling stage")
	ErrStaleAuction       = errors.New("auction changed concurrently")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// SellingStage is the advisory going-once/going-twice marker.
type SellingStage string

const (
	SellingStageNone SellingStage = ""
	SellingStage1    SellingStage = "selling1"
	SellingStage2    SellingStage = "selling2"
)

func ParseSellingStage(v string) (SellingStage, error) {
	switch SellingStage(v) {
	case SellingStage1, SellingStage2:
		return SellingStage(v), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, v)
	}
}

// Auction is a live sale of one player or one club.
type Auction struct {
	ID              int64
	DraftID         int64
	Kind            squad.Kind
	SubjectID       int64
	CurrentBid      int64
	CurrentBidderID int64
	Status          Status
	StartedBy       int64
	SellingStage    SellingStage
	WaitRequestedBy int64
	BidCount        int
	RestartCount    int
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

func (a Auction) IsActive() bool {
	return a.Status == StatusActive
}

func (a Auction) InSellingStage() bool {
	return a.SellingStage == SellingStage1 || a.SellingStage == SellingStage2
}

// WasRestarted reports whether the auction was reopened by an admin after a
// sale. The draft turn moved on at that first sale.
func (a Auction) WasRestarted() bool {
	return a.RestartCount > 0
}

func (a Auction) HasBidder() bool {
	return a.CurrentBidderID > 0
}

// Bid is one accepted bid, in commit order.
type Bid struct {
	ID        int64
	AuctionID int64
	TeamID    int64
	Amount    int64
	IsAuto    bool
	CreatedAt time.Time
}

// ValidateBidAmount checks amount against the increment unit and the current bid.
func ValidateBidAmount(current Auction, amount int64) error {
	if amount < MinBid || amount%BidIncrement != 0 {
		return fmt.Errorf("%w: amount must be a positive multiple of %d, got %d", ErrInvalidAmount, BidIncrement, amount)
	}
	if amount <= current.CurrentBid {
		return fmt.Errorf("%w: amount %d must exceed current bid %d", ErrInvalidAmount, amount, current.CurrentBid)
	}
	return nil
}

// NewOpening builds the auction and opening bid for the team whose turn it is.
func NewOpening(draftID int64, kind squad.Kind, subjectID, teamID int64, now time.Time) (Auction, Bid) {
	a := Auction{
		DraftID:         draftID,
		Kind:            kind,
		SubjectID:       subjectID,
		CurrentBid:      MinBid,
		CurrentBidderID: teamID,
		Status:          StatusActive,
		StartedBy:       teamID,
		BidCount:        1,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	b := Bid{
		TeamID:    teamID,
		Amount:    MinBid,
		CreatedAt: now,
	}
	return a, b
}

package auction

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
)

func TestValidateBidAmount(t *testing.T) {
	current := Auction{CurrentBid: 10}

	tests := []struct {
		name      string
		amount    int64
		targetErr error
	}{
		{name: "next increment", amount: 15},
		{name: "big jump", amount: 200},
		{name: "equal to current", amount: 10, targetErr: ErrInvalidAmount},
		{name: "below current", amount: 5, targetErr: ErrInvalidAmount},
		{name: "not multiple of five", amount: 17, targetErr: ErrInvalidAmount},
		{name: "zero", amount: 0, targetErr: ErrInvalidAmount},
		{name: "negative", amount: -20, targetErr: ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBidAmount(current, tc.amount)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestNewOpening(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a, b := NewOpening(3, squad.KindPlayer, 42, 9, now)

	if !a.IsActive() || a.CurrentBid != MinBid || a.CurrentBidderID != 9 || a.StartedBy != 9 {
		t.Fatalf("unexpected opening auction: %+v", a)
	}
	if a.BidCount != 1 || a.Version != 1 {
		t.Fatalf("unexpected counters: %+v", a)
	}
	if b.TeamID != 9 || b.Amount != MinBid || b.IsAuto {
		t.Fatalf("unexpected opening bid: %+v", b)
	}
}

func TestParseSellingStage(t *testing.T) {
	if _, err := ParseSellingStage("selling1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseSellingStage("selling3"); !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}
}

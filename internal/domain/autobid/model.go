package autobid

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
)

var ErrInvalidInstruction = errors.New("invalid auto-bid instruction")

// Instruction is a team's standing bid on one player.
type Instruction struct {
	PlayerID          int64
	MaxBid            int64
	OnlySellingStage  bool
	NeverSecondBidder bool
	SkipIfClubOwned   bool
}

// Config is a team's full auto-bid configuration. Instructions keep the order
// in which the team saved them.
type Config struct {
	TeamID       int64
	Enabled      bool
	Instructions []Instruction
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c Config) InstructionFor(playerID int64) (Instruction, bool) {
	for _, in := range c.Instructions {
		if in.PlayerID == playerID {
			return in, true
		}
	}
	return Instruction{}, false
}

func (c Config) Validate() error {
	if c.TeamID <= 0 {
		return fmt.Errorf("team id is required")
	}

	seen := make(map[int64]struct{}, len(c.Instructions))
	for _, in := range c.Instructions {
		if in.PlayerID <= 0 {
			return fmt.Errorf("%w: player id is required", ErrInvalidInstruction)
		}
		if _, ok := seen[in.PlayerID]; ok {
			return fmt.Errorf("%w: duplicate player %d", ErrInvalidInstruction, in.PlayerID)
		}
		seen[in.PlayerID] = struct{}{}

		if in.MaxBid < auction.MinBid || in.MaxBid%auction.BidIncrement != 0 {
			return fmt.Errorf("%w: max bid for player %d must be a positive multiple of %d", ErrInvalidInstruction, in.PlayerID, auction.BidIncrement)
		}
	}

	return nil
}

// TickResult is the outcome of one evaluation pass over every configuration.
type TickResult struct {
	Placed    bool
	TeamID    int64
	Amount    int64
	AuctionID int64
}

package autobid

import (
	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
)

// SkipReason explains why a team did not bid on a tick.
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipDisabled        SkipReason = "disabled"
	SkipCurrentBidder   SkipReason = "current_bidder"
	SkipNoInstruction   SkipReason = "no_instruction"
	SkipOverCeiling     SkipReason = "over_ceiling"
	SkipIneligible      SkipReason = "ineligible"
	SkipNotSellingStage SkipReason = "not_selling_stage"
	SkipSecondBidder    SkipReason = "second_bidder"
	SkipClubOwned       SkipReason = "club_owned"
)

// Candidate is everything needed to decide one team's automated bid.
type Candidate struct {
	Config  Config
	Budget  int64
	Roster  squad.Roster
	Auction auction.Auction
	Subject player.Player
	Rules   squad.Rules
}

// Decision is the outcome of Evaluate.
type Decision struct {
	Bid     bool
	Amount  int64
	Ceiling int64
	Reason  SkipReason
	Err     error
}

// Evaluate decides whether the candidate team bids the next increment. A bid
// above the slot-reservation ceiling is skipped, never clamped.
func Evaluate(c Candidate) Decision {
	if !c.Config.Enabled {
		return Decision{Reason: SkipDisabled}
	}
	if c.Auction.CurrentBidderID == c.Config.TeamID {
		return Decision{Reason: SkipCurrentBidder}
	}

	instruction, ok := c.Config.InstructionFor(c.Auction.SubjectID)
	if !ok || instruction.MaxBid <= 0 {
		return Decision{Reason: SkipNoInstruction}
	}

	nextBid := c.Auction.CurrentBid + auction.BidIncrement
	effectiveMax := min(
		instruction.MaxBid,
		squad.MaxAllowedBid(c.Budget, c.Roster.Size(), squad.TotalSlots),
		c.Budget,
	)
	if nextBid > effectiveMax {
		return Decision{Reason: SkipOverCeiling, Ceiling: effectiveMax}
	}

	if err := squad.CanAcquirePlayer(c.Roster, c.Subject, c.Rules); err != nil {
		return Decision{Reason: SkipIneligible, Ceiling: effectiveMax, Err: err}
	}

	if instruction.OnlySellingStage && !c.Auction.InSellingStage() {
		return Decision{Reason: SkipNotSellingStage, Ceiling: effectiveMax}
	}
	if instruction.NeverSecondBidder && c.Auction.BidCount == 1 {
		return Decision{Reason: SkipSecondBidder, Ceiling: effectiveMax}
	}
	if instruction.SkipIfClubOwned && c.Roster.CountFromRealClub(c.Subject.ClubID) > 0 {
		return Decision{Reason: SkipClubOwned, Ceiling: effectiveMax}
	}

	return Decision{Bid: true, Amount: nextBid, Ceiling: effectiveMax}
}

package autobid

import (
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/stretchr/testify/require"
)

func baseCandidate() Candidate {
	return Candidate{
		Config: Config{
			TeamID:  3,
			Enabled: true,
			Instructions: []Instruction{
				{PlayerID: 100, MaxBid: 200},
			},
		},
		Budget: 1000,
		Auction: auction.Auction{
			Kind:            squad.KindPlayer,
			SubjectID:       100,
			CurrentBid:      40,
			CurrentBidderID: 1,
			Status:          auction.StatusActive,
			BidCount:        3,
		},
		Subject: player.Player{ID: 100, Position: player.PositionMidfielder, ClubID: 11},
		Rules:   squad.DefaultRules(),
	}
}

func TestEvaluate_PlacesNextIncrement(t *testing.T) {
	got := Evaluate(baseCandidate())
	require.True(t, got.Bid)
	require.Equal(t, int64(45), got.Amount)
	require.Equal(t, SkipNone, got.Reason)
}

func TestEvaluate_SkipsAboveReservationCeiling(t *testing.T) {
	c := baseCandidate()
	c.Budget = 50
	c.Config.Instructions[0].MaxBid = 50
	c.Auction.CurrentBid = 42
	c.Roster = squad.Roster{Players: make([]player.Player, 13), ClubIDs: []int64{1, 2}}

	got := Evaluate(c)
	require.False(t, got.Bid)
	require.Equal(t, SkipOverCeiling, got.Reason)
	require.Equal(t, int64(45), got.Ceiling)
}

func TestEvaluate_SkipReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Candidate)
		want   SkipReason
	}{
		{
			name:   "disabled",
			mutate: func(c *Candidate) { c.Config.Enabled = false },
			want:   SkipDisabled,
		},
		{
			name:   "already winning",
			mutate: func(c *Candidate) { c.Auction.CurrentBidderID = 3 },
			want:   SkipCurrentBidder,
		},
		{
			name:   "no instruction for subject",
			mutate: func(c *Candidate) { c.Auction.SubjectID = 999 },
			want:   SkipNoInstruction,
		},
		{
			name:   "max bid reached",
			mutate: func(c *Candidate) { c.Auction.CurrentBid = 200 },
			want:   SkipOverCeiling,
		},
		{
			name:   "budget below next bid",
			mutate: func(c *Candidate) { c.Budget = 40 },
			want:   SkipOverCeiling,
		},
		{
			name: "position full",
			mutate: func(c *Candidate) {
				for i := 0; i < 5; i++ {
					c.Roster.Players = append(c.Roster.Players, player.Player{ID: int64(i + 1), Position: player.PositionMidfielder, ClubID: int64(20 + i)})
				}
			},
			want: SkipIneligible,
		},
		{
			name:   "only during selling stage",
			mutate: func(c *Candidate) { c.Config.Instructions[0].OnlySellingStage = true },
			want:   SkipNotSellingStage,
		},
		{
			name: "never second bidder",
			mutate: func(c *Candidate) {
				c.Config.Instructions[0].NeverSecondBidder = true
				c.Auction.BidCount = 1
			},
			want: SkipSecondBidder,
		},
		{
			name: "club already represented",
			mutate: func(c *Candidate) {
				c.Config.Instructions[0].SkipIfClubOwned = true
				c.Roster.Players = []player.Player{{ID: 7, Position: player.PositionForward, ClubID: 11}}
			},
			want: SkipClubOwned,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := baseCandidate()
			tc.mutate(&c)
			got := Evaluate(c)
			require.False(t, got.Bid)
			require.Equal(t, tc.want, got.Reason)
		})
	}
}

func TestEvaluate_FlagsPassWhenSatisfied(t *testing.T) {
	c := baseCandidate()
	c.Config.Instructions[0].OnlySellingStage = true
	c.Config.Instructions[0].NeverSecondBidder = true
	c.Auction.SellingStage = auction.SellingStage2

	got := Evaluate(c)
	require.True(t, got.Bid)
	require.Equal(t, int64(45), got.Amount)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{TeamID: 1, Instructions: []Instruction{{PlayerID: 1, MaxBid: 50}}}
	require.NoError(t, valid.Validate())

	badMultiple := Config{TeamID: 1, Instructions: []Instruction{{PlayerID: 1, MaxBid: 52}}}
	require.ErrorIs(t, badMultiple.Validate(), ErrInvalidInstruction)

	duplicate := Config{TeamID: 1, Instructions: []Instruction{{PlayerID: 1, MaxBid: 50}, {PlayerID: 1, MaxBid: 60}}}
	require.ErrorIs(t, duplicate.Validate(), ErrInvalidInstruction)
}

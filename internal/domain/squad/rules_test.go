package squad

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
)

func TestMaxAllowedBid(t *testing.T) {
	tests := []struct {
		name      string
		budget    int64
		squadSize int
		want      int64
	}{
		{name: "final slot may spend everything", budget: 100, squadSize: 16, want: 100},
		{name: "two slots reserve one unit", budget: 100, squadSize: 15, want: 95},
		{name: "empty squad floors at zero", budget: 20, squadSize: 0, want: 0},
		{name: "complete squad", budget: 500, squadSize: 17, want: 0},
		{name: "over complete squad", budget: 500, squadSize: 18, want: 0},
		{name: "fresh team", budget: 1000, squadSize: 0, want: 920},
		{name: "auto bid ceiling example", budget: 50, squadSize: 15, want: 45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MaxAllowedBid(tc.budget, tc.squadSize, TotalSlots)
			if got != tc.want {
				t.Fatalf("unexpected max allowed bid: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestCanAcquirePlayer(t *testing.T) {
	rules := DefaultRules()

	makePlayers := func(pos player.Position, clubID int64, n int) []player.Player {
		out := make([]player.Player, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, player.Player{ID: int64(len(out) + 1), Position: pos, ClubID: clubID})
		}
		return out
	}

	tests := []struct {
		name      string
		roster    Roster
		candidate player.Player
		targetErr error
	}{
		{
			name:      "empty roster",
			roster:    Roster{},
			candidate: player.Player{ID: 99, Position: player.PositionForward, ClubID: 1},
		},
		{
			name:      "goalkeeper limit",
			roster:    Roster{Players: makePlayers(player.PositionGoalkeeper, 1, 2)},
			candidate: player.Player{ID: 99, Position: player.PositionGoalkeeper, ClubID: 2},
			targetErr: ErrPositionLimitExceeded,
		},
		{
			name:      "forward limit",
			roster:    Roster{Players: append(makePlayers(player.PositionForward, 1, 1), makePlayers(player.PositionForward, 2, 2)...)},
			candidate: player.Player{ID: 99, Position: player.PositionForward, ClubID: 3},
			targetErr: ErrPositionLimitExceeded,
		},
		{
			name:      "three from the same club",
			roster:    Roster{Players: makePlayers(player.PositionDefender, 7, 3)},
			candidate: player.Player{ID: 99, Position: player.PositionMidfielder, ClubID: 7},
			targetErr: ErrClubLimitExceeded,
		},
		{
			name: "fifteen players",
			roster: Roster{Players: append(append(append(
				makePlayers(player.PositionGoalkeeper, 1, 2),
				makePlayers(player.PositionDefender, 2, 5)...),
				makePlayers(player.PositionMidfielder, 3, 5)...),
				makePlayers(player.PositionForward, 4, 3)...)},
			candidate: player.Player{ID: 99, Position: player.PositionForward, ClubID: 5},
			targetErr: ErrSlotLimitExceeded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanAcquirePlayer(tc.roster, tc.candidate, rules)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestCanAcquireClub(t *testing.T) {
	rules := DefaultRules()

	if err := CanAcquireClub(Roster{ClubIDs: []int64{1}}, 2, rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CanAcquireClub(Roster{ClubIDs: []int64{1, 2}}, 3, rules); !errors.Is(err, ErrSlotLimitExceeded) {
		t.Fatalf("expected ErrSlotLimitExceeded, got %v", err)
	}
	if err := CanAcquireClub(Roster{ClubIDs: []int64{1}}, 1, rules); !errors.Is(err, ErrClubLimitExceeded) {
		t.Fatalf("expected ErrClubLimitExceeded, got %v", err)
	}
}

func TestRosterIsComplete(t *testing.T) {
	rules := DefaultRules()
	players := make([]player.Player, 15)
	if (Roster{Players: players, ClubIDs: []int64{1}}).IsComplete(rules) {
		t.Fatalf("roster with one club must not be complete")
	}
	if !(Roster{Players: players, ClubIDs: []int64{1, 2}}).IsComplete(rules) {
		t.Fatalf("roster with 15 players and 2 clubs must be complete")
	}
}

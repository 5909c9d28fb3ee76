package draft

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestGenerateSnakeOrder(t *testing.T) {
	for _, tc := range []struct {
		teams  int
		rounds int
	}{
		{teams: 1, rounds: 1},
		{teams: 2, rounds: 3},
		{teams: 4, rounds: 2},
		{teams: 8, rounds: 17},
	} {
		base := make([]int64, 0, tc.teams)
		for i := 1; i <= tc.teams; i++ {
			base = append(base, int64(i*10))
		}
		base = Shuffle(base, rand.New(rand.NewPCG(uint64(tc.teams), uint64(tc.rounds))))

		entries, err := GenerateSnakeOrder(7, base, tc.rounds)
		if err != nil {
			t.Fatalf("generate order teams=%d rounds=%d: %v", tc.teams, tc.rounds, err)
		}
		if len(entries) != tc.teams*tc.rounds {
			t.Fatalf("unexpected entry count: got=%d want=%d", len(entries), tc.teams*tc.rounds)
		}

		for i, entry := range entries {
			if entry.Position != i+1 {
				t.Fatalf("positions must be contiguous: index=%d position=%d", i, entry.Position)
			}
			if entry.DraftID != 7 {
				t.Fatalf("unexpected draft id %d", entry.DraftID)
			}

			round := i/tc.teams + 1
			offset := i % tc.teams
			if entry.Round != round {
				t.Fatalf("unexpected round at position %d: got=%d want=%d", entry.Position, entry.Round, round)
			}

			want := base[offset]
			wantDirection := DirectionForward
			if round%2 == 0 {
				want = base[tc.teams-1-offset]
				wantDirection = DirectionReverse
			}
			if entry.TeamID != want {
				t.Fatalf("unexpected team at position %d: got=%d want=%d", entry.Position, entry.TeamID, want)
			}
			if entry.Direction != wantDirection {
				t.Fatalf("unexpected direction at position %d: got=%s want=%s", entry.Position, entry.Direction, wantDirection)
			}
		}
	}
}

func TestGenerateSnakeOrder_RejectsInvalidInput(t *testing.T) {
	if _, err := GenerateSnakeOrder(1, nil, 2); !errors.Is(err, ErrNoTeams) {
		t.Fatalf("expected ErrNoTeams, got %v", err)
	}
	if _, err := GenerateSnakeOrder(1, []int64{1, 2}, 0); !errors.Is(err, ErrInvalidRounds) {
		t.Fatalf("expected ErrInvalidRounds, got %v", err)
	}
	if _, err := GenerateSnakeOrder(1, []int64{1, 1}, 1); err == nil {
		t.Fatalf("expected duplicate team error")
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	in := []int64{1, 2, 3, 4, 5, 6}
	out := Shuffle(in, rand.New(rand.NewPCG(1, 2)))
	if len(out) != len(in) {
		t.Fatalf("unexpected length %d", len(out))
	}

	seen := make(map[int64]int)
	for _, id := range out {
		seen[id]++
	}
	for _, id := range in {
		if seen[id] != 1 {
			t.Fatalf("team %d appears %d times", id, seen[id])
		}
	}
	if in[0] != 1 || in[5] != 6 {
		t.Fatalf("input slice must not be mutated")
	}
}

func TestInitialState(t *testing.T) {
	entries, err := GenerateSnakeOrder(3, []int64{5, 9}, 2)
	if err != nil {
		t.Fatalf("generate order: %v", err)
	}

	state := InitialState(3, entries)
	if state.Active {
		t.Fatalf("initial state must be inactive")
	}
	if state.CurrentPosition != 1 || state.CurrentTeamID != 5 || state.TotalPositions != 4 {
		t.Fatalf("unexpected initial state: %+v", state)
	}
	if state.IsTurnOf(5) {
		t.Fatalf("inactive draft must not grant turns")
	}
	state.Active = true
	if !state.IsTurnOf(5) || state.IsTurnOf(9) {
		t.Fatalf("unexpected turn ownership: %+v", state)
	}
}

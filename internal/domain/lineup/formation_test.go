package lineup

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
)

func positions(gk, def, mid, fwd int) []player.Position {
	out := make([]player.Position, 0, gk+def+mid+fwd)
	for i := 0; i < gk; i++ {
		out = append(out, player.PositionGoalkeeper)
	}
	for i := 0; i < def; i++ {
		out = append(out, player.PositionDefender)
	}
	for i := 0; i < mid; i++ {
		out = append(out, player.PositionMidfielder)
	}
	for i := 0; i < fwd; i++ {
		out = append(out, player.PositionForward)
	}
	return out
}

func TestValidateFormation(t *testing.T) {
	tests := []struct {
		name    string
		in      []player.Position
		wantErr bool
	}{
		{name: "seven players", in: positions(1, 3, 2, 1), wantErr: true},
		{name: "4-4-2", in: positions(1, 4, 4, 2)},
		{name: "two goalkeepers", in: positions(2, 4, 4, 1), wantErr: true},
		{name: "3-5-2", in: positions(1, 3, 5, 2)},
		{name: "5-2-3", in: positions(1, 5, 2, 3)},
		{name: "5-4-1", in: positions(1, 5, 4, 1)},
		{name: "no goalkeeper", in: positions(0, 5, 4, 2), wantErr: true},
		{name: "two defenders", in: positions(1, 2, 5, 3), wantErr: true},
		{name: "six defenders", in: positions(1, 6, 3, 1), wantErr: true},
		{name: "one midfielder", in: positions(1, 5, 1, 3)[:10], wantErr: true},
		{name: "four forwards", in: positions(1, 3, 3, 4), wantErr: true},
		{name: "no forward", in: positions(1, 5, 5, 0), wantErr: true},
		{name: "twelve players", in: positions(1, 4, 4, 3), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFormation(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFormation) {
					t.Fatalf("expected ErrInvalidFormation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSwap(t *testing.T) {
	pos := map[int64]player.Position{
		1: player.PositionGoalkeeper,
		2: player.PositionDefender, 3: player.PositionDefender, 4: player.PositionDefender, 5: player.PositionDefender,
		6: player.PositionMidfielder, 7: player.PositionMidfielder, 8: player.PositionMidfielder, 9: player.PositionMidfielder,
		10: player.PositionForward, 11: player.PositionForward,
		12: player.PositionGoalkeeper, 13: player.PositionDefender, 14: player.PositionMidfielder, 15: player.PositionForward,
	}
	starting := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	bench := []int64{12, 13, 14, 15}

	gotStarting, gotBench, err := Swap(starting, bench, 6, 15, pos)
	if err != nil {
		t.Fatalf("swap midfielder for forward: %v", err)
	}
	if gotStarting[5] != 15 || gotBench[3] != 6 {
		t.Fatalf("unexpected swap result: starting=%v bench=%v", gotStarting, gotBench)
	}
	if starting[5] != 6 {
		t.Fatalf("input must not be mutated")
	}

	if _, _, err := Swap(starting, bench, 2, 12, pos); !errors.Is(err, ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation for defender->goalkeeper, got %v", err)
	}
	if _, _, err := Swap(starting, bench, 99, 12, pos); !errors.Is(err, ErrInvalidSwap) {
		t.Fatalf("expected ErrInvalidSwap for unknown starter, got %v", err)
	}
	if _, _, err := Swap(starting, bench, 2, 3, pos); !errors.Is(err, ErrInvalidSwap) {
		t.Fatalf("expected ErrInvalidSwap for non-bench player, got %v", err)
	}
}

package lineup

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
)

// 4-4-2 with bench GK, DEF, MID, FWD.
func fixturePositions() map[int64]player.Position {
	return map[int64]player.Position{
		1: player.PositionGoalkeeper,
		2: player.PositionDefender, 3: player.PositionDefender, 4: player.PositionDefender, 5: player.PositionDefender,
		6: player.PositionMidfielder, 7: player.PositionMidfielder, 8: player.PositionMidfielder, 9: player.PositionMidfielder,
		10: player.PositionForward, 11: player.PositionForward,
		12: player.PositionGoalkeeper, 13: player.PositionDefender, 14: player.PositionMidfielder, 15: player.PositionForward,
	}
}

func allPlayed(ids ...int64) map[int64]int {
	out := make(map[int64]int)
	for id := int64(1); id <= 15; id++ {
		out[id] = 90
	}
	for _, id := range ids {
		out[id] = 0
	}
	return out
}

func TestAutoSubstitute_NoChangesWhenEveryonePlayed(t *testing.T) {
	starting := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	bench := []int64{12, 13, 14, 15}

	got := AutoSubstitute(SubstitutionInput{
		Starting:  starting,
		Bench:     bench,
		Positions: fixturePositions(),
		Minutes:   allPlayed(),
	})

	if !reflect.DeepEqual(got.Starting, starting) || !reflect.DeepEqual(got.Bench, bench) {
		t.Fatalf("lineup changed: starting=%v bench=%v", got.Starting, got.Bench)
	}
	if len(got.Substitutions) != 0 {
		t.Fatalf("expected no substitutions, got %v", got.Substitutions)
	}
}

func TestAutoSubstitute_BenchBoostSkips(t *testing.T) {
	starting := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	bench := []int64{12, 13, 14, 15}

	got := AutoSubstitute(SubstitutionInput{
		Starting:   starting,
		Bench:      bench,
		Positions:  fixturePositions(),
		Minutes:    allPlayed(1, 2),
		BenchBoost: true,
	})
	if len(got.Substitutions) != 0 || !reflect.DeepEqual(got.Starting, starting) {
		t.Fatalf("bench boost must not substitute: %+v", got)
	}
}

func TestAutoSubstitute_GoalkeeperOnlyForGoalkeeper(t *testing.T) {
	starting := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	bench := []int64{13, 12, 14, 15}

	got := AutoSubstitute(SubstitutionInput{
		Starting:  starting,
		Bench:     bench,
		Positions: fixturePositions(),
		Minutes:   allPlayed(1),
	})

	want := []Substitution{{Out: 1, In: 12, Reason: ReasonGoalkeeper}}
	if !reflect.DeepEqual(got.Substitutions, want) {
		t.Fatalf("unexpected substitutions: %+v", got.Substitutions)
	}
	if got.Starting[0] != 12 || got.Bench[1] != 1 {
		t.Fatalf("starter must take the substitute bench slot: starting=%v bench=%v", got.Starting, got.Bench)
	}
}

func TestAutoSubstitute_GoalkeeperWithoutPlayingBackup(t *testing.T) {
	got := AutoSubstitute(SubstitutionInput{
		Starting:  []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		Bench:     []int64{12, 13, 14, 15},
		Positions: fixturePositions(),
		Minutes:   allPlayed(1, 12),
	})
	if len(got.Substitutions) != 0 || got.Starting[0] != 1 {
		t.Fatalf("goalkeeper must stay unfilled: %+v", got)
	}
}

func TestAutoSubstitute_OutfieldRespectsFormationAndBenchOrder(t *testing.T) {
	pos := fixturePositions()
	// 3-5-2: losing a defender can only be fixed by the bench defender.
	pos[5] = player.PositionMidfielder
	starting := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	bench := []int64{12, 15, 14, 13}

	got := AutoSubstitute(SubstitutionInput{
		Starting:  starting,
		Bench:     bench,
		Positions: pos,
		Minutes:   allPlayed(2, 6),
	})

	want := []Substitution{
		{Out: 2, In: 13, Reason: ReasonDidNotPlay},
		{Out: 6, In: 15, Reason: ReasonDidNotPlay},
	}
	if !reflect.DeepEqual(got.Substitutions, want) {
		t.Fatalf("unexpected substitutions: %+v", got.Substitutions)
	}
	if !reflect.DeepEqual(got.Bench, []int64{12, 6, 14, 2}) {
		t.Fatalf("unexpected bench: %v", got.Bench)
	}
}

func TestAutoSubstitute_EachBenchPlayerUsedOnce(t *testing.T) {
	pos := fixturePositions()
	minutes := allPlayed(6, 7, 13, 14, 15)

	got := AutoSubstitute(SubstitutionInput{
		Starting:  []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		Bench:     []int64{12, 13, 14, 15},
		Positions: pos,
		Minutes:   minutes,
	})
	if len(got.Substitutions) != 0 {
		t.Fatalf("no outfield bench player played, expected no substitutions: %+v", got.Substitutions)
	}

	minutes[14] = 30
	got = AutoSubstitute(SubstitutionInput{
		Starting:  []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		Bench:     []int64{12, 13, 14, 15},
		Positions: pos,
		Minutes:   minutes,
	})
	want := []Substitution{{Out: 6, In: 14, Reason: ReasonDidNotPlay}}
	if !reflect.DeepEqual(got.Substitutions, want) {
		t.Fatalf("unexpected substitutions: %+v", got.Substitutions)
	}
	if got.Starting[6] != 7 {
		t.Fatalf("second non-playing starter must remain: %v", got.Starting)
	}
}

package lineup

import "github.com/riskibarqy/fantasy-auction/internal/domain/player"

const (
	ReasonGoalkeeper = "goalkeeper substitution"
	ReasonDidNotPlay = "player did not play"
)

// Substitution records one automatic bench swap.
type Substitution struct {
	Out    int64
	In     int64
	Reason string
}

type SubstitutionInput struct {
	Starting   []int64
	Bench      []int64
	Positions  map[int64]player.Position
	Minutes    map[int64]int
	BenchBoost bool
}

type SubstitutionResult struct {
	Starting      []int64
	Bench         []int64
	Substitutions []Substitution
}

// AutoSubstitute replaces starters with zero minutes by the first eligible bench
// player in bench order. Each starter is examined once; a starter that cannot
// be replaced keeps their slot.
func AutoSubstitute(in SubstitutionInput) SubstitutionResult {
	starting := append([]int64(nil), in.Starting...)
	bench := append([]int64(nil), in.Bench...)
	result := SubstitutionResult{
		Starting:      starting,
		Bench:         bench,
		Substitutions: []Substitution{},
	}
	if in.BenchBoost {
		return result
	}

	used := make(map[int64]struct{}, len(bench))
	for i := range starting {
		starterID := starting[i]
		if in.Minutes[starterID] > 0 {
			continue
		}
		pos, ok := in.Positions[starterID]
		if !ok {
			continue
		}

		for j, benchID := range bench {
			if _, taken := used[benchID]; taken {
				continue
			}
			if in.Minutes[benchID] <= 0 {
				continue
			}
			benchPos, ok := in.Positions[benchID]
			if !ok {
				continue
			}

			reason := ReasonDidNotPlay
			if pos == player.PositionGoalkeeper {
				if benchPos != player.PositionGoalkeeper {
					continue
				}
				reason = ReasonGoalkeeper
			} else {
				if benchPos == player.PositionGoalkeeper {
					continue
				}
				trial := append([]int64(nil), starting...)
				trial[i] = benchID
				if ValidateFormationIDs(trial, in.Positions) != nil {
					continue
				}
			}

			starting[i] = benchID
			bench[j] = starterID
			used[benchID] = struct{}{}
			used[starterID] = struct{}{}
			result.Substitutions = append(result.Substitutions, Substitution{
				Out:    starterID,
				In:     benchID,
				Reason: reason,
			})
			break
		}
	}

	return result
}

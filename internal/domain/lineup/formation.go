package lineup

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
)

const (
	StartingSize = 11
	BenchSize    = 4
)

var (
	ErrInvalidFormation = errors.New("invalid formation")
	ErrInvalidSwap      = errors.New("invalid swap")
)

type positionRange struct {
	min int
	max int
}

var formationLimits = map[player.Position]positionRange{
	player.PositionGoalkeeper: {min: 1, max: 1},
	player.PositionDefender:   {min: 3, max: 5},
	player.PositionMidfielder: {min: 2, max: 5},
	player.PositionForward:    {min: 1, max: 3},
}

// formationOrder keeps error messages deterministic.
var formationOrder = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionForward,
}

func CountPositions(positions []player.Position) map[player.Position]int {
	out := make(map[player.Position]int, len(formationLimits))
	for _, pos := range positions {
		out[pos]++
	}
	return out
}

// ValidateFormation checks a starting eleven: 1 GKP, 3-5 DEF, 2-5 MID, 1-3 FWD.
func ValidateFormation(positions []player.Position) error {
	if len(positions) != StartingSize {
		return fmt.Errorf("%w: expected %d starters, got %d", ErrInvalidFormation, StartingSize, len(positions))
	}

	counts := CountPositions(positions)
	for pos, n := range counts {
		if _, ok := formationLimits[pos]; !ok {
			return fmt.Errorf("%w: unknown position %q (%d players)", ErrInvalidFormation, pos, n)
		}
	}
	for _, pos := range formationOrder {
		limit := formationLimits[pos]
		if counts[pos] < limit.min || counts[pos] > limit.max {
			return fmt.Errorf("%w: pos=%s count=%d allowed=%d-%d", ErrInvalidFormation, pos, counts[pos], limit.min, limit.max)
		}
	}

	return nil
}

// ValidateFormationIDs resolves positions for playerIDs and validates them.
func ValidateFormationIDs(playerIDs []int64, positions map[int64]player.Position) error {
	resolved := make([]player.Position, 0, len(playerIDs))
	for _, id := range playerIDs {
		pos, ok := positions[id]
		if !ok {
			return fmt.Errorf("%w: unknown player %d", ErrInvalidFormation, id)
		}
		resolved = append(resolved, pos)
	}
	return ValidateFormation(resolved)
}

// Swap exchanges a starter with a bench player when the resulting eleven is
// still a valid formation.
func Swap(starting, bench []int64, outID, inID int64, positions map[int64]player.Position) ([]int64, []int64, error) {
	outIdx := indexOf(starting, outID)
	if outIdx < 0 {
		return nil, nil, fmt.Errorf("%w: player %d is not in the starting eleven", ErrInvalidSwap, outID)
	}
	inIdx := indexOf(bench, inID)
	if inIdx < 0 {
		return nil, nil, fmt.Errorf("%w: player %d is not on the bench", ErrInvalidSwap, inID)
	}

	nextStarting := append([]int64(nil), starting...)
	nextBench := append([]int64(nil), bench...)
	nextStarting[outIdx] = inID
	nextBench[inIdx] = outID

	if err := ValidateFormationIDs(nextStarting, positions); err != nil {
		return nil, nil, err
	}

	return nextStarting, nextBench, nil
}

func indexOf(ids []int64, target int64) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

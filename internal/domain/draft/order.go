package draft

import (
	"fmt"
	"math/rand/v2"
)

// Shuffle returns a uniformly random permutation of teamIDs using rng.
func Shuffle(teamIDs []int64, rng *rand.Rand) []int64 {
	out := make([]int64, len(teamIDs))
	copy(out, teamIDs)
	if rng == nil {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// GenerateSnakeOrder expands a base permutation into rounds*len(base) entries.
// Odd rounds follow base, even rounds follow its reverse.
func GenerateSnakeOrder(draftID int64, base []int64, rounds int) ([]OrderEntry, error) {
	if len(base) == 0 {
		return nil, ErrNoTeams
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}

	seen := make(map[int64]struct{}, len(base))
	for _, teamID := range base {
		if teamID <= 0 {
			return nil, fmt.Errorf("invalid team id %d in draft order", teamID)
		}
		if _, ok := seen[teamID]; ok {
			return nil, fmt.Errorf("duplicate team id %d in draft order", teamID)
		}
		seen[teamID] = struct{}{}
	}

	numTeams := len(base)
	entries := make([]OrderEntry, 0, numTeams*rounds)
	position := 1
	for round := 1; round <= rounds; round++ {
		direction := DirectionForward
		if round%2 == 0 {
			direction = DirectionReverse
		}

		for i := 0; i < numTeams; i++ {
			teamID := base[i]
			if direction == DirectionReverse {
				teamID = base[numTeams-1-i]
			}
			entries = append(entries, OrderEntry{
				DraftID:   draftID,
				Position:  position,
				TeamID:    teamID,
				Round:     round,
				Direction: direction,
			})
			position++
		}
	}

	return entries, nil
}

// InitialState is the state persisted alongside a freshly generated order.
func InitialState(draftID int64, entries []OrderEntry) State {
	state := State{
		DraftID:         draftID,
		CurrentPosition: 1,
		TotalPositions:  len(entries),
	}
	if len(entries) > 0 {
		state.CurrentTeamID = entries[0].TeamID
	}
	return state
}

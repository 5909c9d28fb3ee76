package gameweek

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
)

const (
	StartingSize = 11
	BenchSize    = 4
)

var ErrInvalidSubmission = errors.New("invalid gameweek submission")

// Submission is a team's lineup for one gameweek.
type Submission struct {
	TeamID           int64
	Gameweek         int
	Starting         []int64
	Bench            []int64
	CaptainID        int64
	ViceCaptainID    int64
	ClubMultiplierID int64
	Chip             chip.Chip
	SubmittedAt      time.Time
	Compliance       Compliance
	IsDefault        bool
}

// ValidateShape checks counts, duplicates and captaincy. Formation and
// ownership are checked by the caller.
func (s Submission) ValidateShape() error {
	if s.TeamID <= 0 {
		return fmt.Errorf("%w: team id is required", ErrInvalidSubmission)
	}
	if s.Gameweek < 1 {
		return fmt.Errorf("%w: gameweek must be positive", ErrInvalidSubmission)
	}
	if len(s.Starting) != StartingSize {
		return fmt.Errorf("%w: expected %d starters, got %d", ErrInvalidSubmission, StartingSize, len(s.Starting))
	}
	if len(s.Bench) != BenchSize {
		return fmt.Errorf("%w: expected %d bench players, got %d", ErrInvalidSubmission, BenchSize, len(s.Bench))
	}

	seen := make(map[int64]struct{}, StartingSize+BenchSize)
	for _, id := range append(append([]int64(nil), s.Starting...), s.Bench...) {
		if id <= 0 {
			return fmt.Errorf("%w: invalid player id %d", ErrInvalidSubmission, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate player %d", ErrInvalidSubmission, id)
		}
		seen[id] = struct{}{}
	}

	if s.CaptainID == s.ViceCaptainID {
		return fmt.Errorf("%w: captain and vice-captain must be different", ErrInvalidSubmission)
	}
	if !contains(s.Starting, s.CaptainID) {
		return fmt.Errorf("%w: captain must be in the starting eleven", ErrInvalidSubmission)
	}
	if !contains(s.Starting, s.ViceCaptainID) {
		return fmt.Errorf("%w: vice-captain must be in the starting eleven", ErrInvalidSubmission)
	}
	if s.ClubMultiplierID <= 0 {
		return fmt.Errorf("%w: club multiplier is required", ErrInvalidSubmission)
	}

	return nil
}

// AsDefaultFor carries a previous submission into gameweek gw without its chip.
func (s Submission) AsDefaultFor(gw int) Submission {
	out := s
	out.Gameweek = gw
	out.Chip = chip.None
	out.IsDefault = true
	out.Starting = append([]int64(nil), s.Starting...)
	out.Bench = append([]int64(nil), s.Bench...)
	return out
}

func (s Submission) AllPlayerIDs() []int64 {
	return append(append([]int64(nil), s.Starting...), s.Bench...)
}

// HistoryEntry is an immutable copy of a submission at the time it was saved.
type HistoryEntry struct {
	ID int64
	Submission
}

func contains(ids []int64, target int64) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

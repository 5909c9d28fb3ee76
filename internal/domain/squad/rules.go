package squad

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
)

const (
	// TotalSlots is players plus clubs a complete squad holds.
	TotalSlots = 17
	// MinBidUnit is the smallest amount reserved per unfilled slot.
	MinBidUnit int64 = 5
)

var (
	ErrSlotLimitExceeded     = errors.New("squad slot limit exceeded")
	ErrPositionLimitExceeded = errors.New("position limit exceeded")
	ErrClubLimitExceeded     = errors.New("club limit exceeded")
)

// Rules stores squad acquisition limits.
type Rules struct {
	MaxPlayers     int
	MaxClubs       int
	MaxPerRealClub int
	MaxByPosition  map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		MaxPlayers:     15,
		MaxClubs:       2,
		MaxPerRealClub: 3,
		MaxByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 2,
			player.PositionDefender:   5,
			player.PositionMidfielder: 5,
			player.PositionForward:    3,
		},
	}
}

// Roster is a team's current squad resolved with player metadata.
type Roster struct {
	Players []player.Player
	ClubIDs []int64
}

func (r Roster) Size() int {
	return len(r.Players) + len(r.ClubIDs)
}

func (r Roster) IsComplete(rules Rules) bool {
	return len(r.Players) >= rules.MaxPlayers && len(r.ClubIDs) >= rules.MaxClubs
}

func (r Roster) CountByPosition(pos player.Position) int {
	count := 0
	for _, p := range r.Players {
		if p.Position == pos {
			count++
		}
	}
	return count
}

func (r Roster) CountFromRealClub(clubID int64) int {
	count := 0
	for _, p := range r.Players {
		if p.ClubID == clubID {
			count++
		}
	}
	return count
}

func (r Roster) OwnsClub(clubID int64) bool {
	for _, id := range r.ClubIDs {
		if id == clubID {
			return true
		}
	}
	return false
}

// CanAcquirePlayer checks slot, position and real-club limits for one more player.
func CanAcquirePlayer(r Roster, candidate player.Player, rules Rules) error {
	if len(r.Players) >= rules.MaxPlayers {
		return fmt.Errorf("%w: players=%d max=%d", ErrSlotLimitExceeded, len(r.Players), rules.MaxPlayers)
	}

	maxForPosition, ok := rules.MaxByPosition[candidate.Position]
	if !ok {
		return fmt.Errorf("%w: unknown position %s", ErrPositionLimitExceeded, candidate.Position)
	}
	if current := r.CountByPosition(candidate.Position); current >= maxForPosition {
		return fmt.Errorf("%w: pos=%s max=%d current=%d", ErrPositionLimitExceeded, candidate.Position, maxForPosition, current)
	}

	if current := r.CountFromRealClub(candidate.ClubID); current >= rules.MaxPerRealClub {
		return fmt.Errorf("%w: club=%d max=%d current=%d", ErrClubLimitExceeded, candidate.ClubID, rules.MaxPerRealClub, current)
	}

	return nil
}

// CanAcquireClub checks the club slot limit for one more club.
func CanAcquireClub(r Roster, clubID int64, rules Rules) error {
	if len(r.ClubIDs) >= rules.MaxClubs {
		return fmt.Errorf("%w: clubs=%d max=%d", ErrSlotLimitExceeded, len(r.ClubIDs), rules.MaxClubs)
	}
	if r.OwnsClub(clubID) {
		return fmt.Errorf("%w: club=%d already owned", ErrClubLimitExceeded, clubID)
	}

	return nil
}

// MaxAllowedBid returns the most a team may bid while still reserving
// MinBidUnit for every other unfilled slot.
func MaxAllowedBid(budget int64, squadSize, totalSlots int) int64 {
	remaining := totalSlots - squadSize
	if remaining <= 0 {
		return 0
	}
	if remaining == 1 {
		return budget
	}

	allowed := budget - MinBidUnit*int64(remaining-1)
	if allowed < 0 {
		return 0
	}
	return allowed
}

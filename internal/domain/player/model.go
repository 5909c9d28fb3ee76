package player

import "fmt"

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// PositionFromElementType maps the upstream element_type code (1..4) to a Position.
func PositionFromElementType(elementType int) (Position, bool) {
	switch elementType {
	case 1:
		return PositionGoalkeeper, true
	case 2:
		return PositionDefender, true
	case 3:
		return PositionMidfielder, true
	case 4:
		return PositionForward, true
	default:
		return "", false
	}
}

// Player is an auctionable Premier League footballer.
type Player struct {
	ID       int64
	WebName  string
	FullName string
	Position Position
	ClubID   int64
	Price    int64
	Status   string
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.WebName == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.ClubID <= 0 {
		return fmt.Errorf("player club id is required")
	}

	return nil
}

// IsOutfield reports whether the player is not a goalkeeper.
func (p Player) IsOutfield() bool {
	return p.Position != PositionGoalkeeper
}

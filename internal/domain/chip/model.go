package chip

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidChipUsage = errors.New("invalid chip usage")

// Chip is a one-time-per-season scoring modifier.
type Chip string

const (
	None          Chip = ""
	TripleCaptain Chip = "triple_captain"
	AttackChip    Chip = "attack_chip"
	NegativeChip  Chip = "negative_chip"
	DoubleUp      Chip = "double_up"
	BenchBoost    Chip = "bench_boost"
	ParkTheBus    Chip = "park_the_bus"
	Brahmasthra   Chip = "brahmasthra"
)

// Definition is the display metadata of a chip.
type Definition struct {
	ID          Chip
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: TripleCaptain, Name: "Triple Captain", Description: "Captain gets 3x points instead of 2x"},
	{ID: AttackChip, Name: "Attack Chip", Description: "MID and FWD players in the starting eleven get 2x points"},
	{ID: NegativeChip, Name: "Negative Chip", Description: "Team total is halved; not allowed in a blank gameweek"},
	{ID: DoubleUp, Name: "Double Up", Description: "Team total is doubled; not allowed in a double gameweek"},
	{ID: BenchBoost, Name: "Bench Boost", Description: "All 15 players contribute points"},
	{ID: ParkTheBus, Name: "Park the Bus", Description: "GKP and DEF players in the starting eleven get 2x points"},
	{ID: Brahmasthra, Name: "Brahmasthra", Description: "Every starter gets 3x points"},
}

func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

func Parse(v string) (Chip, error) {
	if v == "" {
		return None, nil
	}
	for _, def := range catalog {
		if string(def.ID) == v {
			return def.ID, nil
		}
	}
	return None, fmt.Errorf("%w: unknown chip %q", ErrInvalidChipUsage, v)
}

// Usage records that a team permanently consumed a chip in a gameweek.
type Usage struct {
	TeamID   int64
	Chip     Chip
	Gameweek int
	UsedAt   time.Time
}

// Key is unique per team and chip.
func (u Usage) Key() string {
	return fmt.Sprintf("%d_%s", u.TeamID, u.Chip)
}

// GameweekKind is the subset of gameweek typing that constrains chips.
type GameweekKind interface {
	IsBlank() bool
	IsDouble() bool
}

// ValidateUse checks that chip c may be planned for gameweek gw given the team's
// permanent usages.
func ValidateUse(c Chip, gw int, kind GameweekKind, used []Usage) error {
	if c == None {
		return nil
	}
	if _, err := Parse(string(c)); err != nil {
		return err
	}

	for _, u := range used {
		if u.Chip == c {
			return fmt.Errorf("%w: %s already used in gameweek %d", ErrInvalidChipUsage, c, u.Gameweek)
		}
		if u.Gameweek == gw {
			return fmt.Errorf("%w: only one chip per gameweek, %s already used in gameweek %d", ErrInvalidChipUsage, u.Chip, gw)
		}
	}

	if c == NegativeChip && kind != nil && kind.IsBlank() {
		return fmt.Errorf("%w: %s cannot be used in a blank gameweek", ErrInvalidChipUsage, c)
	}
	if c == DoubleUp && kind != nil && kind.IsDouble() {
		return fmt.Errorf("%w: %s cannot be used in a double gameweek", ErrInvalidChipUsage, c)
	}

	return nil
}

// Status is a chip's availability for one team.
type Status struct {
	Definition
	Used         bool
	GameweekUsed int
	Planned      bool
}

// BuildStatus merges the catalog with permanent usages and the chip planned
// for the queried gameweek.
func BuildStatus(used []Usage, planned Chip) []Status {
	byChip := make(map[Chip]Usage, len(used))
	for _, u := range used {
		byChip[u.Chip] = u
	}

	out := make([]Status, 0, len(catalog))
	for _, def := range catalog {
		s := Status{Definition: def, Planned: def.ID == planned}
		if u, ok := byChip[def.ID]; ok {
			s.Used = true
			s.GameweekUsed = u.Gameweek
		}
		out = append(out, s)
	}
	return out
}

package draft

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoTeams        = errors.New("draft requires at least one team")
	ErrOrderExists    = errors.New("draft order already initialized")
	ErrOrderEmpty     = errors.New("draft order is empty")
	ErrAlreadyActive  = errors.New("draft is already active")
	ErrNotActive      = errors.New("draft is not active")
	ErrInvalidRounds  = errors.New("draft rounds must be greater than zero")
	ErrPositionAbsent = errors.New("draft position missing from order")
)

// Direction is the direction a snake round walks the base permutation.
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionReverse Direction = "reverse"
)

// Draft is one isolated draft-and-season cycle.
type Draft struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

func (d Draft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("draft name is required")
	}
	return nil
}

// OrderEntry is one frozen turn slot of the snake order.
type OrderEntry struct {
	DraftID   int64
	Position  int
	TeamID    int64
	Round     int
	Direction Direction
}

// State tracks whose turn it is inside a draft.
type State struct {
	DraftID         int64
	Active          bool
	CurrentPosition int
	CurrentTeamID   int64
	TotalPositions  int
	StartedAt       *time.Time
	EndedAt         *time.Time
	UpdatedAt       time.Time
}

// IsTurnOf reports whether teamID may nominate right now.
func (s State) IsTurnOf(teamID int64) bool {
	return s.Active && teamID > 0 && s.CurrentTeamID == teamID
}

// AdvanceResult is the outcome of moving the draft pointer.
type AdvanceResult struct {
	HasNext   bool
	Completed bool
	Position  int
	TeamID    int64
	Skipped   []int64
}

package team

import "fmt"

// StartingBudget is the budget every fantasy team receives at draft creation and reset.
const StartingBudget int64 = 1000

// Team is a fantasy manager's team taking part in the auction draft.
type Team struct {
	ID       int64
	Name     string
	Username string
	UserID   string
	Budget   int64
	IsAdmin  bool
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Budget < 0 {
		return fmt.Errorf("team budget must not be negative")
	}

	return nil
}

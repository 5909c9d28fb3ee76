package club

import "fmt"

// Club is a real-world Premier League club; it can be auctioned as a squad item
// and declared as a gameweek club multiplier.
type Club struct {
	ID        int64
	Name      string
	ShortName string
}

func (c Club) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("club id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}

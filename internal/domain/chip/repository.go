package chip

import "context"

// Repository persists permanent chip usages.
type Repository interface {
	ListByTeam(ctx context.Context, teamID int64) ([]Usage, error)
	// Record inserts usage keyed by team and chip; an existing record is kept.
	Record(ctx context.Context, usage Usage) (bool, error)
}

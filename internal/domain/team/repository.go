package team

import "context"

// Repository describes team persistence needs from use cases.
// Budgets change only through auction.Repository and draft reset.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	GetByUserID(ctx context.Context, userID string) (Team, bool, error)
}

package autobid

import "context"

// Repository persists auto-bid configurations.
type Repository interface {
	// List returns every configuration in insertion order.
	List(ctx context.Context) ([]Config, error)
	GetByTeam(ctx context.Context, teamID int64) (Config, bool, error)
	Upsert(ctx context.Context, cfg Config) error
}

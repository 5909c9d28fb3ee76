package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []int64) ([]Player, error)
	UpsertMany(ctx context.Context, players []Player) error
}

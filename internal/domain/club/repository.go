package club

import "context"

// Repository describes club persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
	GetByID(ctx context.Context, clubID int64) (Club, bool, error)
	UpsertMany(ctx context.Context, clubs []Club) error
}

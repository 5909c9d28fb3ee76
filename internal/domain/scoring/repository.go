package scoring

import "context"

type Repository interface {
	Get(ctx context.Context, teamID int64, gw int) (GameweekPoints, bool, error)
	ListByGameweek(ctx context.Context, gw int) ([]GameweekPoints, error)
	ListByTeam(ctx context.Context, teamID int64) ([]GameweekPoints, error)
	Upsert(ctx context.Context, points GameweekPoints) error
	// UpdateRanks replaces the rank of every listed team in gw in one unit.
	UpdateRanks(ctx context.Context, gw int, ranks map[int64]int) error
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

// BootstrapSeed loads the reference clubs, players and teams into an empty
// database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := NewClubRepository(db).UpsertMany(ctx, memory.SeedClubs()); err != nil {
		return fmt.Errorf("seed clubs: %w", err)
	}
	if err := NewPlayerRepository(db).UpsertMany(ctx, memory.SeedPlayers()); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}

	return withTx(ctx, db, "seed teams", func(tx *sqlx.Tx) error {
		for _, t := range memory.SeedTeams() {
			query, args, err := qb.InsertInto("teams").
				Columns("id", "name", "username", "user_id", "budget", "is_admin").
				Values(t.ID, t.Name, t.Username, t.UserID, t.Budget, t.IsAdmin).
				Suffix("ON CONFLICT (id) DO NOTHING").
				ToSQL()
			if err != nil {
				return fmt.Errorf("build seed team %d query: %w", t.ID, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed team %d: %w", t.ID, err)
			}
		}
		return nil
	})
}

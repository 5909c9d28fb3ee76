package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

const upsertBatchSize = 200

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int64) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", qb.Int64s(playerIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, players []player.Player) error {
	for start := 0; start < len(players); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(players))

		builder := qb.InsertInto("players").
			Columns("id", "web_name", "full_name", "position", "club_id", "price", "status").
			Suffix(`ON CONFLICT (id) DO UPDATE SET
    web_name = EXCLUDED.web_name,
    full_name = EXCLUDED.full_name,
    position = EXCLUDED.position,
    club_id = EXCLUDED.club_id,
    price = EXCLUDED.price,
    status = EXCLUDED.status,
    updated_at = NOW()`)
		for _, p := range players[start:end] {
			builder.Values(p.ID, p.WebName, p.FullName, string(p.Position), p.ClubID, p.Price, p.Status)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert players query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert players batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.ID,
		WebName:  row.WebName,
		FullName: row.FullName,
		Position: player.Position(row.Position),
		ClubID:   row.ClubID,
		Price:    row.Price,
		Status:   row.Status,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, club.Club{ID: row.ID, Name: row.Name, ShortName: row.ShortName})
	}
	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").Where(qb.Eq("id", clubID)).ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club: %w", err)
	}
	return club.Club{ID: row.ID, Name: row.Name, ShortName: row.ShortName}, true, nil
}

func (r *ClubRepository) UpsertMany(ctx context.Context, clubs []club.Club) error {
	if len(clubs) == 0 {
		return nil
	}

	builder := qb.InsertInto("clubs").
		Columns("id", "name", "short_name").
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    short_name = EXCLUDED.short_name,
    updated_at = NOW()`)
	for _, c := range clubs {
		builder.Values(c.ID, c.Name, c.ShortName)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert clubs query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert clubs: %w", err)
	}
	return nil
}

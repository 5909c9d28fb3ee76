package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/scoring"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

var pointsSelectColumns = []string{
	"team_id",
	"gameweek",
	"base_points",
	"final_points",
	"chip",
	"effective_captain_id",
	"substitutions::text AS substitutions",
	"rank",
	"calculated_at",
}

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) Get(ctx context.Context, teamID int64, gw int) (scoring.GameweekPoints, bool, error) {
	query, args, err := qb.Select(pointsSelectColumns...).From("gameweek_points").
		Where(qb.Eq("team_id", teamID), qb.Eq("gameweek", gw)).
		ToSQL()
	if err != nil {
		return scoring.GameweekPoints{}, false, fmt.Errorf("build get gameweek points query: %w", err)
	}

	var row gameweekPointsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.GameweekPoints{}, false, nil
		}
		return scoring.GameweekPoints{}, false, fmt.Errorf("get gameweek points: %w", err)
	}

	out, err := pointsFromRow(row)
	if err != nil {
		return scoring.GameweekPoints{}, false, err
	}
	return out, true, nil
}

// ListByGameweek orders by rank, unranked rows last by team id.
func (r *PointsRepository) ListByGameweek(ctx context.Context, gw int) ([]scoring.GameweekPoints, error) {
	return r.list(ctx, "list gameweek points", qb.Eq("gameweek", gw), "CASE WHEN rank = 0 THEN 1 ELSE 0 END", "rank", "team_id")
}

func (r *PointsRepository) ListByTeam(ctx context.Context, teamID int64) ([]scoring.GameweekPoints, error) {
	return r.list(ctx, "list team points", qb.Eq("team_id", teamID), "gameweek")
}

func (r *PointsRepository) list(ctx context.Context, op string, cond qb.Condition, orderBy ...string) ([]scoring.GameweekPoints, error) {
	query, args, err := qb.Select(pointsSelectColumns...).From("gameweek_points").
		Where(cond).
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []gameweekPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]scoring.GameweekPoints, 0, len(rows))
	for _, row := range rows {
		p, err := pointsFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Upsert keeps the stored rank when points.Rank is zero.
func (r *PointsRepository) Upsert(ctx context.Context, points scoring.GameweekPoints) error {
	subs, err := encodeSubstitutions(points.Substitutions)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("gameweek_points", gameweekPointsTableModel{
		TeamID:             points.TeamID,
		Gameweek:           points.Gameweek,
		BasePoints:         points.BasePoints,
		FinalPoints:        points.FinalPoints,
		Chip:               string(points.Chip),
		EffectiveCaptainID: points.EffectiveCaptainID,
		Substitutions:      subs,
		Rank:               points.Rank,
		CalculatedAt:       points.CalculatedAt,
	}, `ON CONFLICT (team_id, gameweek) DO UPDATE SET
    base_points = EXCLUDED.base_points,
    final_points = EXCLUDED.final_points,
    chip = EXCLUDED.chip,
    effective_captain_id = EXCLUDED.effective_captain_id,
    substitutions = EXCLUDED.substitutions,
    rank = CASE WHEN EXCLUDED.rank = 0 THEN gameweek_points.rank ELSE EXCLUDED.rank END,
    calculated_at = EXCLUDED.calculated_at`)
	if err != nil {
		return fmt.Errorf("build upsert gameweek points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert gameweek points team=%d gw=%d: %w", points.TeamID, points.Gameweek, err)
	}
	return nil
}

func (r *PointsRepository) UpdateRanks(ctx context.Context, gw int, ranks map[int64]int) error {
	return withTx(ctx, r.db, "update gameweek ranks", func(tx *sqlx.Tx) error {
		for teamID, rank := range ranks {
			query, args, err := qb.Update("gameweek_points").
				Set("rank", rank).
				Where(qb.Eq("team_id", teamID), qb.Eq("gameweek", gw)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build update rank query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("update rank team=%d gw=%d: %w", teamID, gw, err)
			}
		}
		return nil
	})
}

func encodeSubstitutions(subs []lineup.Substitution) (string, error) {
	if len(subs) == 0 {
		return "[]", nil
	}
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(subs)
	if err != nil {
		return "", fmt.Errorf("encode substitutions: %w", err)
	}
	return raw, nil
}

func decodeSubstitutions(raw string) ([]lineup.Substitution, error) {
	out := []lineup.Substitution{}
	if raw == "" {
		return out, nil
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &out); err != nil {
		return nil, fmt.Errorf("decode substitutions: %w", err)
	}
	return out, nil
}

func pointsFromRow(row gameweekPointsTableModel) (scoring.GameweekPoints, error) {
	subs, err := decodeSubstitutions(row.Substitutions)
	if err != nil {
		return scoring.GameweekPoints{}, err
	}
	return scoring.GameweekPoints{
		TeamID:             row.TeamID,
		Gameweek:           row.Gameweek,
		BasePoints:         row.BasePoints,
		FinalPoints:        row.FinalPoints,
		Chip:               chip.Chip(row.Chip),
		EffectiveCaptainID: row.EffectiveCaptainID,
		Substitutions:      subs,
		Rank:               row.Rank,
		CalculatedAt:       row.CalculatedAt,
	}, nil
}

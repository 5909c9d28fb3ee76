package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

type AutoBidRepository struct {
	db *sqlx.DB
}

func NewAutoBidRepository(db *sqlx.DB) *AutoBidRepository {
	return &AutoBidRepository{db: db}
}

// List returns configurations ordered by first save.
func (r *AutoBidRepository) List(ctx context.Context) ([]autobid.Config, error) {
	query, args, err := qb.Select("*").From("autobid_configs").OrderBy("seq").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list autobid configs query: %w", err)
	}

	var rows []autoBidConfigTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list autobid configs: %w", err)
	}
	if len(rows) == 0 {
		return []autobid.Config{}, nil
	}

	instructions, err := r.instructionsByTeam(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]autobid.Config, 0, len(rows))
	for _, row := range rows {
		out = append(out, autoBidFromRow(row, instructions[row.TeamID]))
	}
	return out, nil
}

func (r *AutoBidRepository) GetByTeam(ctx context.Context, teamID int64) (autobid.Config, bool, error) {
	query, args, err := qb.Select("*").From("autobid_configs").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return autobid.Config{}, false, fmt.Errorf("build get autobid config query: %w", err)
	}

	var row autoBidConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return autobid.Config{}, false, nil
		}
		return autobid.Config{}, false, fmt.Errorf("get autobid config: %w", err)
	}

	instructions, err := r.instructionsByTeam(ctx, qb.Eq("team_id", teamID))
	if err != nil {
		return autobid.Config{}, false, err
	}
	return autoBidFromRow(row, instructions[teamID]), true, nil
}

func (r *AutoBidRepository) instructionsByTeam(ctx context.Context, conds ...qb.Condition) (map[int64][]autobid.Instruction, error) {
	query, args, err := qb.Select("*").From("autobid_instructions").
		Where(conds...).
		OrderBy("team_id", "sort_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list autobid instructions query: %w", err)
	}

	var rows []autoBidInstructionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list autobid instructions: %w", err)
	}

	out := make(map[int64][]autobid.Instruction)
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], autobid.Instruction{
			PlayerID:          row.PlayerID,
			MaxBid:            row.MaxBid,
			OnlySellingStage:  row.OnlySellingStage,
			NeverSecondBidder: row.NeverSecondBidder,
			SkipIfClubOwned:   row.SkipIfClubOwned,
		})
	}
	return out, nil
}

// Upsert replaces the team's instructions; the configuration keeps its
// position in List.
func (r *AutoBidRepository) Upsert(ctx context.Context, cfg autobid.Config) error {
	return withTx(ctx, r.db, "upsert autobid config", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertInto("autobid_configs").
			Columns("team_id", "enabled", "created_at", "updated_at").
			Values(cfg.TeamID, cfg.Enabled, cfg.CreatedAt, cfg.UpdatedAt).
			Suffix(`ON CONFLICT (team_id) DO UPDATE SET
    enabled = EXCLUDED.enabled,
    updated_at = EXCLUDED.updated_at`).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert autobid config query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert autobid config team=%d: %w", cfg.TeamID, err)
		}

		deleteQuery, deleteArgs, err := qb.DeleteFrom("autobid_instructions").
			Where(qb.Eq("team_id", cfg.TeamID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear autobid instructions query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("clear autobid instructions team=%d: %w", cfg.TeamID, err)
		}

		if len(cfg.Instructions) == 0 {
			return nil
		}
		builder := qb.InsertInto("autobid_instructions").
			Columns("team_id", "sort_order", "player_id", "max_bid", "only_selling_stage", "never_second_bidder", "skip_if_club_owned")
		for i, in := range cfg.Instructions {
			builder.Values(cfg.TeamID, i, in.PlayerID, in.MaxBid, in.OnlySellingStage, in.NeverSecondBidder, in.SkipIfClubOwned)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert autobid instructions query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert autobid instructions team=%d: %w", cfg.TeamID, err)
		}
		return nil
	})
}

func autoBidFromRow(row autoBidConfigTableModel, instructions []autobid.Instruction) autobid.Config {
	if instructions == nil {
		instructions = []autobid.Instruction{}
	}
	return autobid.Config{
		TeamID:       row.TeamID,
		Enabled:      row.Enabled,
		Instructions: instructions,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

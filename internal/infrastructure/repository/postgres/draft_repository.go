package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) List(ctx context.Context) ([]draft.Draft, error) {
	query, args, err := qb.Select("*").From("drafts").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select drafts query: %w", err)
	}

	var rows []draftTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select drafts: %w", err)
	}

	out := make([]draft.Draft, 0, len(rows))
	for _, row := range rows {
		out = append(out, draftFromRow(row))
	}
	return out, nil
}

func (r *DraftRepository) GetActive(ctx context.Context) (draft.Draft, bool, error) {
	query, args, err := qb.Select("*").From("drafts").
		Where(qb.Eq("is_active", true)).
		Limit(1).
		ToSQL()
	if err != nil {
		return draft.Draft{}, false, fmt.Errorf("build get active draft query: %w", err)
	}

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get active draft: %w", err)
	}
	return draftFromRow(row), true, nil
}

// Create stores d with a new ID. An active d deactivates every other draft.
func (r *DraftRepository) Create(ctx context.Context, d draft.Draft) (draft.Draft, error) {
	err := withTx(ctx, r.db, "create draft", func(tx *sqlx.Tx) error {
		if d.IsActive {
			if err := deactivateDrafts(ctx, tx); err != nil {
				return err
			}
		}

		query, args, err := qb.InsertInto("drafts").
			Columns("name", "description", "is_active", "created_at").
			Values(d.Name, d.Description, d.IsActive, d.CreatedAt).
			Suffix("RETURNING id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build insert draft query: %w", err)
		}
		if err := tx.GetContext(ctx, &d.ID, query, args...); err != nil {
			return fmt.Errorf("insert draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return draft.Draft{}, err
	}
	return d, nil
}

func (r *DraftRepository) SetActive(ctx context.Context, draftID int64) error {
	return withTx(ctx, r.db, "set active draft", func(tx *sqlx.Tx) error {
		if err := deactivateDrafts(ctx, tx); err != nil {
			return err
		}

		query, args, err := qb.Update("drafts").
			Set("is_active", true).
			Where(qb.Eq("id", draftID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build activate draft query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("activate draft %d: %w", draftID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("draft %d not found", draftID)
		}
		return nil
	})
}

func deactivateDrafts(ctx context.Context, tx *sqlx.Tx) error {
	query, args, err := qb.Update("drafts").
		Set("is_active", false).
		Where(qb.Eq("is_active", true)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate drafts query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate drafts: %w", err)
	}
	return nil
}

func (r *DraftRepository) ListOrder(ctx context.Context, draftID int64) ([]draft.OrderEntry, error) {
	query, args, err := qb.Select("*").From("draft_order").
		Where(qb.Eq("draft_id", draftID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draft order query: %w", err)
	}

	var rows []draftOrderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft order: %w", err)
	}

	out := make([]draft.OrderEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, draft.OrderEntry{
			DraftID:   row.DraftID,
			Position:  row.Position,
			TeamID:    row.TeamID,
			Round:     row.Round,
			Direction: draft.Direction(row.Direction),
		})
	}
	return out, nil
}

func (r *DraftRepository) InitializeOrder(ctx context.Context, draftID int64, entries []draft.OrderEntry, state draft.State) error {
	return withTx(ctx, r.db, "initialize draft order", func(tx *sqlx.Tx) error {
		if _, err := lockDraft(ctx, tx, draftID); err != nil {
			return err
		}

		var existing int
		if err := tx.GetContext(ctx, &existing, `SELECT COUNT(1) FROM draft_order WHERE draft_id = $1`, draftID); err != nil {
			return fmt.Errorf("count draft order: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: draft %d", draft.ErrOrderExists, draftID)
		}

		if len(entries) > 0 {
			builder := qb.InsertInto("draft_order").
				Columns("draft_id", "position", "team_id", "round", "direction")
			for _, e := range entries {
				builder.Values(draftID, e.Position, e.TeamID, e.Round, string(e.Direction))
			}
			query, args, err := builder.ToSQL()
			if err != nil {
				return fmt.Errorf("build insert draft order query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert draft order: %w", err)
			}
		}

		return saveState(ctx, tx, state)
	})
}

func (r *DraftRepository) GetState(ctx context.Context, draftID int64) (draft.State, bool, error) {
	query, args, err := qb.Select("*").From("draft_states").
		Where(qb.Eq("draft_id", draftID)).
		ToSQL()
	if err != nil {
		return draft.State{}, false, fmt.Errorf("build get draft state query: %w", err)
	}

	var row draftStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.State{}, false, nil
		}
		return draft.State{}, false, fmt.Errorf("get draft state: %w", err)
	}
	return draft.State{
		DraftID:         row.DraftID,
		Active:          row.Active,
		CurrentPosition: row.CurrentPosition,
		CurrentTeamID:   row.CurrentTeamID,
		TotalPositions:  row.TotalPositions,
		StartedAt:       timePtr(row.StartedAt),
		EndedAt:         timePtr(row.EndedAt),
		UpdatedAt:       row.UpdatedAt,
	}, true, nil
}

func (r *DraftRepository) SaveState(ctx context.Context, state draft.State) error {
	return withTx(ctx, r.db, "save draft state", func(tx *sqlx.Tx) error {
		return saveState(ctx, tx, state)
	})
}

func saveState(ctx context.Context, tx *sqlx.Tx, state draft.State) error {
	query, args, err := qb.InsertModel("draft_states", draftStateTableModel{
		DraftID:         state.DraftID,
		Active:          state.Active,
		CurrentPosition: state.CurrentPosition,
		CurrentTeamID:   state.CurrentTeamID,
		TotalPositions:  state.TotalPositions,
		StartedAt:       nullTime(state.StartedAt),
		EndedAt:         nullTime(state.EndedAt),
		UpdatedAt:       state.UpdatedAt,
	}, `ON CONFLICT (draft_id) DO UPDATE SET
    active = EXCLUDED.active,
    current_position = EXCLUDED.current_position,
    current_team_id = EXCLUDED.current_team_id,
    total_positions = EXCLUDED.total_positions,
    started_at = EXCLUDED.started_at,
    ended_at = EXCLUDED.ended_at,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert draft state query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert draft state %d: %w", state.DraftID, err)
	}
	return nil
}

func (r *DraftRepository) Reset(ctx context.Context, draftID int64, startingBudget int64) error {
	return withTx(ctx, r.db, "reset draft", func(tx *sqlx.Tx) error {
		if _, err := lockDraft(ctx, tx, draftID); err != nil {
			return err
		}

		statements := []struct {
			op   string
			stmt string
		}{
			{op: "delete bids", stmt: `DELETE FROM bids WHERE auction_id IN (SELECT id FROM auctions WHERE draft_id = $1)`},
			{op: "delete auctions", stmt: `DELETE FROM auctions WHERE draft_id = $1`},
			{op: "delete squad items", stmt: `DELETE FROM squad_items WHERE draft_id = $1`},
			{op: "delete draft order", stmt: `DELETE FROM draft_order WHERE draft_id = $1`},
			{op: "delete draft state", stmt: `DELETE FROM draft_states WHERE draft_id = $1`},
		}
		for _, s := range statements {
			if _, err := tx.ExecContext(ctx, s.stmt, draftID); err != nil {
				return fmt.Errorf("%s for draft %d: %w", s.op, draftID, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `UPDATE teams SET budget = $1, updated_at = NOW()`, startingBudget); err != nil {
			return fmt.Errorf("restore team budgets: %w", err)
		}
		return nil
	})
}

func lockDraft(ctx context.Context, tx *sqlx.Tx, draftID int64) (draftTableModel, error) {
	query, args, err := qb.Select("*").From("drafts").
		Where(qb.Eq("id", draftID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return draftTableModel{}, fmt.Errorf("build lock draft query: %w", err)
	}

	var row draftTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draftTableModel{}, fmt.Errorf("draft %d not found", draftID)
		}
		return draftTableModel{}, fmt.Errorf("lock draft %d: %w", draftID, err)
	}
	return row, nil
}

func draftFromRow(row draftTableModel) draft.Draft {
	return draft.Draft{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
}

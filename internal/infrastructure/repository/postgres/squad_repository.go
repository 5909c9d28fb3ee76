package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

const squadItemSubjectIndex = "uq_squad_items_subject"

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) ListByDraft(ctx context.Context, draftID int64) ([]squad.Item, error) {
	return r.list(ctx, "list squad items by draft", qb.Eq("draft_id", draftID))
}

func (r *SquadRepository) ListByTeam(ctx context.Context, draftID, teamID int64) ([]squad.Item, error) {
	return r.list(ctx, "list squad items by team", qb.Eq("draft_id", draftID), qb.Eq("team_id", teamID))
}

func (r *SquadRepository) list(ctx context.Context, op string, conds ...qb.Condition) ([]squad.Item, error) {
	query, args, err := qb.Select(squadItemSelectColumns...).From("squad_items").
		Where(conds...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []squadItemTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]squad.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, squadItemFromRow(row))
	}
	return out, nil
}

func (r *SquadRepository) GetBySubject(ctx context.Context, draftID int64, kind squad.Kind, subjectID int64) (squad.Item, bool, error) {
	return getSquadItem(ctx, r.db, draftID, kind, subjectID)
}

func getSquadItem(ctx context.Context, q sqlx.QueryerContext, draftID int64, kind squad.Kind, subjectID int64) (squad.Item, bool, error) {
	query, args, err := qb.Select(squadItemSelectColumns...).From("squad_items").
		Where(
			qb.Eq("draft_id", draftID),
			qb.Eq("kind", string(kind)),
			qb.Eq("subject_id", subjectID),
		).
		ToSQL()
	if err != nil {
		return squad.Item{}, false, fmt.Errorf("build get squad item query: %w", err)
	}

	var row squadItemTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squad.Item{}, false, nil
		}
		return squad.Item{}, false, fmt.Errorf("get squad item %s: %w", squad.SubjectKey(kind, subjectID), err)
	}
	return squadItemFromRow(row), true, nil
}

func squadItemFromRow(row squadItemTableModel) squad.Item {
	return squad.Item{
		DraftID:    row.DraftID,
		TeamID:     row.TeamID,
		Kind:       squad.Kind(row.Kind),
		SubjectID:  row.SubjectID,
		PricePaid:  row.PricePaid,
		AcquiredAt: row.AcquiredAt,
	}
}

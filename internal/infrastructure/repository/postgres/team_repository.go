package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by id", qb.Eq("id", teamID))
}

func (r *TeamRepository) GetByUserID(ctx context.Context, userID string) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by user", qb.Eq("user_id", userID))
}

func (r *TeamRepository) getOne(ctx context.Context, op string, cond qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").Where(cond).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return teamFromRow(row), true, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.ID,
		Name:     row.Name,
		Username: row.Username,
		UserID:   row.UserID,
		Budget:   row.Budget,
		IsAdmin:  row.IsAdmin,
	}
}

// lockTeam reads a team row with FOR UPDATE inside tx.
func lockTeam(ctx context.Context, tx *sqlx.Tx, teamID int64) (teamTableModel, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return teamTableModel{}, false, fmt.Errorf("build lock team query: %w", err)
	}

	var row teamTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamTableModel{}, false, nil
		}
		return teamTableModel{}, false, fmt.Errorf("lock team %d: %w", teamID, err)
	}
	return row, true, nil
}

func adjustTeamBudget(ctx context.Context, tx *sqlx.Tx, teamID, delta int64) error {
	query, args, err := qb.Update("teams").
		SetExpr("budget", "budget + ?", delta).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build adjust team budget query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("adjust budget of team %d: %w", teamID, err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Get(ctx context.Context, teamID int64, gw int) (gameweek.Submission, bool, error) {
	return r.getOne(ctx, "get submission", qb.Select(submissionSelectColumns...).From("gameweek_submissions").
		Where(qb.Eq("team_id", teamID), qb.Eq("gameweek", gw)))
}

func (r *SubmissionRepository) GetLatestBefore(ctx context.Context, teamID int64, gw int) (gameweek.Submission, bool, error) {
	return r.getOne(ctx, "get latest submission", qb.Select(submissionSelectColumns...).From("gameweek_submissions").
		Where(qb.Eq("team_id", teamID), qb.Lt("gameweek", gw)).
		OrderBy("gameweek DESC").
		Limit(1))
}

func (r *SubmissionRepository) getOne(ctx context.Context, op string, builder *qb.SelectBuilder) (gameweek.Submission, bool, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return gameweek.Submission{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row submissionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Submission{}, false, nil
		}
		return gameweek.Submission{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return submissionFromRow(row), true, nil
}

func (r *SubmissionRepository) ListByGameweek(ctx context.Context, gw int) ([]gameweek.Submission, error) {
	return r.list(ctx, "list submissions by gameweek", "team_id", qb.Eq("gameweek", gw))
}

func (r *SubmissionRepository) ListByTeam(ctx context.Context, teamID int64) ([]gameweek.Submission, error) {
	return r.list(ctx, "list submissions by team", "gameweek", qb.Eq("team_id", teamID))
}

func (r *SubmissionRepository) list(ctx context.Context, op, orderBy string, cond qb.Condition) ([]gameweek.Submission, error) {
	query, args, err := qb.Select(submissionSelectColumns...).From("gameweek_submissions").
		Where(cond).
		OrderBy(orderBy).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []submissionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]gameweek.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, submissionFromRow(row))
	}
	return out, nil
}

func (r *SubmissionRepository) Save(ctx context.Context, sub gameweek.Submission) error {
	model := submissionToRow(sub)
	return withTx(ctx, r.db, "save submission", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModel("gameweek_submissions", model, `ON CONFLICT (team_id, gameweek) DO UPDATE SET
    starting_ids = EXCLUDED.starting_ids,
    bench_ids = EXCLUDED.bench_ids,
    captain_id = EXCLUDED.captain_id,
    vice_captain_id = EXCLUDED.vice_captain_id,
    club_multiplier_id = EXCLUDED.club_multiplier_id,
    chip = EXCLUDED.chip,
    submitted_at = EXCLUDED.submitted_at,
    compliance = EXCLUDED.compliance,
    is_default = EXCLUDED.is_default`)
		if err != nil {
			return fmt.Errorf("build upsert submission query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert submission team=%d gw=%d: %w", sub.TeamID, sub.Gameweek, err)
		}

		historyQuery, historyArgs, err := qb.InsertModel("gameweek_submission_history", model, "")
		if err != nil {
			return fmt.Errorf("build insert submission history query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, historyQuery, historyArgs...); err != nil {
			return fmt.Errorf("insert submission history team=%d gw=%d: %w", sub.TeamID, sub.Gameweek, err)
		}
		return nil
	})
}

// ListHistory returns the saved versions for a team and gameweek, newest first.
func (r *SubmissionRepository) ListHistory(ctx context.Context, teamID int64, gw int) ([]gameweek.HistoryEntry, error) {
	query, args, err := qb.Select(append([]string{"id"}, submissionSelectColumns...)...).
		From("gameweek_submission_history").
		Where(qb.Eq("team_id", teamID), qb.Eq("gameweek", gw)).
		OrderBy("id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list submission history query: %w", err)
	}

	var rows []submissionHistoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list submission history: %w", err)
	}

	out := make([]gameweek.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweek.HistoryEntry{ID: row.ID, Submission: submissionFromRow(row.submissionTableModel)})
	}
	return out, nil
}

func submissionToRow(sub gameweek.Submission) submissionTableModel {
	return submissionTableModel{
		TeamID:           sub.TeamID,
		Gameweek:         sub.Gameweek,
		StartingIDs:      append([]int64(nil), sub.Starting...),
		BenchIDs:         append([]int64(nil), sub.Bench...),
		CaptainID:        sub.CaptainID,
		ViceCaptainID:    sub.ViceCaptainID,
		ClubMultiplierID: sub.ClubMultiplierID,
		Chip:             string(sub.Chip),
		SubmittedAt:      sub.SubmittedAt,
		Compliance:       string(sub.Compliance),
		IsDefault:        sub.IsDefault,
	}
}

func submissionFromRow(row submissionTableModel) gameweek.Submission {
	return gameweek.Submission{
		TeamID:           row.TeamID,
		Gameweek:         row.Gameweek,
		Starting:         append([]int64(nil), row.StartingIDs...),
		Bench:            append([]int64(nil), row.BenchIDs...),
		CaptainID:        row.CaptainID,
		ViceCaptainID:    row.ViceCaptainID,
		ClubMultiplierID: row.ClubMultiplierID,
		Chip:             chip.Chip(row.Chip),
		SubmittedAt:      row.SubmittedAt,
		Compliance:       gameweek.Compliance(row.Compliance),
		IsDefault:        row.IsDefault,
	}
}

type ChipRepository struct {
	db *sqlx.DB
}

func NewChipRepository(db *sqlx.DB) *ChipRepository {
	return &ChipRepository{db: db}
}

func (r *ChipRepository) ListByTeam(ctx context.Context, teamID int64) ([]chip.Usage, error) {
	query, args, err := qb.Select("*").From("chip_usages").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("gameweek").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list chip usages query: %w", err)
	}

	var rows []chipUsageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list chip usages: %w", err)
	}

	out := make([]chip.Usage, 0, len(rows))
	for _, row := range rows {
		out = append(out, chip.Usage{
			TeamID:   row.TeamID,
			Chip:     chip.Chip(row.Chip),
			Gameweek: row.Gameweek,
			UsedAt:   row.UsedAt,
		})
	}
	return out, nil
}

// Record reports whether a new usage row was written.
func (r *ChipRepository) Record(ctx context.Context, usage chip.Usage) (bool, error) {
	query, args, err := qb.InsertModel("chip_usages", chipUsageTableModel{
		TeamID:   usage.TeamID,
		Chip:     string(usage.Chip),
		Gameweek: usage.Gameweek,
		UsedAt:   usage.UsedAt,
	}, "ON CONFLICT (team_id, chip) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build record chip usage query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("record chip usage %s: %w", usage.Key(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read chip usage rows affected: %w", err)
	}
	return n > 0, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/scoring"
)

type SubmissionRepository struct {
	s *Store
}

func (r *SubmissionRepository) Get(_ context.Context, teamID int64, gw int) (gameweek.Submission, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub, ok := r.s.submissions[submissionKey{teamID: teamID, gw: gw}]
	return cloneSubmission(sub), ok, nil
}

func (r *SubmissionRepository) GetLatestBefore(_ context.Context, teamID int64, gw int) (gameweek.Submission, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var (
		best  gameweek.Submission
		found bool
	)
	for key, sub := range r.s.submissions {
		if key.teamID != teamID || key.gw >= gw {
			continue
		}
		if !found || key.gw > best.Gameweek {
			best = sub
			found = true
		}
	}
	return cloneSubmission(best), found, nil
}

func (r *SubmissionRepository) ListByGameweek(_ context.Context, gw int) ([]gameweek.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]gameweek.Submission, 0)
	for key, sub := range r.s.submissions {
		if key.gw == gw {
			out = append(out, cloneSubmission(sub))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *SubmissionRepository) ListByTeam(_ context.Context, teamID int64) ([]gameweek.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]gameweek.Submission, 0)
	for key, sub := range r.s.submissions {
		if key.teamID == teamID {
			out = append(out, cloneSubmission(sub))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gameweek < out[j].Gameweek })
	return out, nil
}

func (r *SubmissionRepository) Save(_ context.Context, sub gameweek.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub = cloneSubmission(sub)
	r.s.submissions[submissionKey{teamID: sub.TeamID, gw: sub.Gameweek}] = sub
	r.s.nextHistoryID++
	r.s.history = append(r.s.history, gameweek.HistoryEntry{ID: r.s.nextHistoryID, Submission: cloneSubmission(sub)})
	return nil
}

// ListHistory returns the saved versions for a team and gameweek, newest first.
func (r *SubmissionRepository) ListHistory(_ context.Context, teamID int64, gw int) ([]gameweek.HistoryEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]gameweek.HistoryEntry, 0)
	for i := len(r.s.history) - 1; i >= 0; i-- {
		h := r.s.history[i]
		if h.TeamID == teamID && h.Gameweek == gw {
			h.Submission = cloneSubmission(h.Submission)
			out = append(out, h)
		}
	}
	return out, nil
}

func cloneSubmission(sub gameweek.Submission) gameweek.Submission {
	sub.Starting = cloneInt64s(sub.Starting)
	sub.Bench = cloneInt64s(sub.Bench)
	return sub
}

type ChipRepository struct {
	s *Store
}

func (r *ChipRepository) ListByTeam(_ context.Context, teamID int64) ([]chip.Usage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]chip.Usage, 0)
	for _, u := range r.s.chipUsages {
		if u.TeamID == teamID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *ChipRepository) Record(_ context.Context, usage chip.Usage) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.chipUsages {
		if u.Key() == usage.Key() {
			return false, nil
		}
	}
	r.s.chipUsages = append(r.s.chipUsages, usage)
	return true, nil
}

type PointsRepository struct {
	s *Store
}

func (r *PointsRepository) Get(_ context.Context, teamID int64, gw int) (scoring.GameweekPoints, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.points[submissionKey{teamID: teamID, gw: gw}]
	return clonePoints(p), ok, nil
}

// ListByGameweek orders by rank, unranked rows last by team id.
func (r *PointsRepository) ListByGameweek(_ context.Context, gw int) ([]scoring.GameweekPoints, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]scoring.GameweekPoints, 0)
	for key, p := range r.s.points {
		if key.gw == gw {
			out = append(out, clonePoints(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		if ri != rj {
			if ri == 0 {
				return false
			}
			if rj == 0 {
				return true
			}
			return ri < rj
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

func (r *PointsRepository) ListByTeam(_ context.Context, teamID int64) ([]scoring.GameweekPoints, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]scoring.GameweekPoints, 0)
	for key, p := range r.s.points {
		if key.teamID == teamID {
			out = append(out, clonePoints(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gameweek < out[j].Gameweek })
	return out, nil
}

func (r *PointsRepository) Upsert(_ context.Context, points scoring.GameweekPoints) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := submissionKey{teamID: points.TeamID, gw: points.Gameweek}
	if existing, ok := r.s.points[key]; ok && points.Rank == 0 {
		points.Rank = existing.Rank
	}
	r.s.points[key] = clonePoints(points)
	return nil
}

func (r *PointsRepository) UpdateRanks(_ context.Context, gw int, ranks map[int64]int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for teamID, rank := range ranks {
		key := submissionKey{teamID: teamID, gw: gw}
		p, ok := r.s.points[key]
		if !ok {
			continue
		}
		p.Rank = rank
		r.s.points[key] = p
	}
	return nil
}

func clonePoints(p scoring.GameweekPoints) scoring.GameweekPoints {
	p.Substitutions = append([]lineup.Substitution(nil), p.Substitutions...)
	return p
}

package memory

import (
	"context"

	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
)

type SquadRepository struct {
	s *Store
}

func (r *SquadRepository) ListByDraft(_ context.Context, draftID int64) ([]squad.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]squad.Item(nil), r.s.squadItems[draftID]...), nil
}

func (r *SquadRepository) ListByTeam(_ context.Context, draftID, teamID int64) ([]squad.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.teamItemsLocked(draftID, teamID), nil
}

func (r *SquadRepository) GetBySubject(_ context.Context, draftID int64, kind squad.Kind, subjectID int64) (squad.Item, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, _, ok := r.s.findItemLocked(draftID, kind, subjectID)
	return item, ok, nil
}

func (s *Store) teamItemsLocked(draftID, teamID int64) []squad.Item {
	out := make([]squad.Item, 0, squad.TotalSlots)
	for _, item := range s.squadItems[draftID] {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) findItemLocked(draftID int64, kind squad.Kind, subjectID int64) (squad.Item, int, bool) {
	for i, item := range s.squadItems[draftID] {
		if item.Kind == kind && item.SubjectID == subjectID {
			return item, i, true
		}
	}
	return squad.Item{}, -1, false
}

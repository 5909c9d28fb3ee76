package squad

import "context"

// Repository exposes read access to ownership records. Items are written only by
// auction completion and removed only by restart or draft reset.
type Repository interface {
	ListByDraft(ctx context.Context, draftID int64) ([]Item, error)
	ListByTeam(ctx context.Context, draftID, teamID int64) ([]Item, error)
	GetBySubject(ctx context.Context, draftID int64, kind Kind, subjectID int64) (Item, bool, error)
}

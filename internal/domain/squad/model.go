package squad

import (
	"fmt"
	"time"
)

// Kind distinguishes the two things a team can own after an auction.
type Kind string

const (
	KindPlayer Kind = "player"
	KindClub   Kind = "club"
)

func ParseKind(v string) (Kind, error) {
	switch Kind(v) {
	case KindPlayer, KindClub:
		return Kind(v), nil
	default:
		return "", fmt.Errorf("unknown squad item kind: %q", v)
	}
}

// Item is an ownership record created when an auction completes.
type Item struct {
	DraftID    int64
	TeamID     int64
	Kind       Kind
	SubjectID  int64
	PricePaid  int64
	AcquiredAt time.Time
}

func (i Item) Validate() error {
	if i.DraftID <= 0 {
		return fmt.Errorf("draft id is required")
	}
	if i.TeamID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if _, err := ParseKind(string(i.Kind)); err != nil {
		return err
	}
	if i.SubjectID <= 0 {
		return fmt.Errorf("subject id is required")
	}
	if i.PricePaid <= 0 {
		return fmt.Errorf("price paid must be greater than zero")
	}

	return nil
}

// Key identifies the owned subject inside a draft.
func (i Item) Key() string {
	return SubjectKey(i.Kind, i.SubjectID)
}

func SubjectKey(kind Kind, subjectID int64) string {
	return fmt.Sprintf("%s::%d", kind, subjectID)
}

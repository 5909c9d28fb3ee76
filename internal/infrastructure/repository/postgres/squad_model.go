package postgres

import "time"

var squadItemSelectColumns = []string{
	"draft_id",
	"team_id",
	"kind",
	"subject_id",
	"price_paid",
	"acquired_at",
}

type squadItemTableModel struct {
	DraftID    int64     `db:"draft_id"`
	TeamID     int64     `db:"team_id"`
	Kind       string    `db:"kind"`
	SubjectID  int64     `db:"subject_id"`
	PricePaid  int64     `db:"price_paid"`
	AcquiredAt time.Time `db:"acquired_at"`
}

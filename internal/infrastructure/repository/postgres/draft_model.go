package postgres

import (
	"database/sql"
	"time"
)

type draftTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

type draftOrderTableModel struct {
	DraftID   int64  `db:"draft_id"`
	Position  int    `db:"position"`
	TeamID    int64  `db:"team_id"`
	Round     int    `db:"round"`
	Direction string `db:"direction"`
}

type draftStateTableModel struct {
	DraftID         int64        `db:"draft_id"`
	Active          bool         `db:"active"`
	CurrentPosition int          `db:"current_position"`
	CurrentTeamID   int64        `db:"current_team_id"`
	TotalPositions  int          `db:"total_positions"`
	StartedAt       sql.NullTime `db:"started_at"`
	EndedAt         sql.NullTime `db:"ended_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

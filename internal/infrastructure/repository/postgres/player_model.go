package postgres

import "time"

var playerSelectColumns = []string{
	"id",
	"web_name",
	"full_name",
	"position",
	"club_id",
	"price",
	"status",
	"created_at",
	"updated_at",
}

type playerTableModel struct {
	ID        int64     `db:"id"`
	WebName   string    `db:"web_name"`
	FullName  string    `db:"full_name"`
	Position  string    `db:"position"`
	ClubID    int64     `db:"club_id"`
	Price     int64     `db:"price"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type clubTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	ShortName string    `db:"short_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

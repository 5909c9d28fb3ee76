package postgres

import (
	"time"

	"github.com/lib/pq"
)

type autoBidConfigTableModel struct {
	Seq       int64     `db:"seq"`
	TeamID    int64     `db:"team_id"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type autoBidInstructionTableModel struct {
	TeamID            int64 `db:"team_id"`
	SortOrder         int   `db:"sort_order"`
	PlayerID          int64 `db:"player_id"`
	MaxBid            int64 `db:"max_bid"`
	OnlySellingStage  bool  `db:"only_selling_stage"`
	NeverSecondBidder bool  `db:"never_second_bidder"`
	SkipIfClubOwned   bool  `db:"skip_if_club_owned"`
}

var submissionSelectColumns = []string{
	"team_id",
	"gameweek",
	"starting_ids",
	"bench_ids",
	"captain_id",
	"vice_captain_id",
	"club_multiplier_id",
	"chip",
	"submitted_at",
	"compliance",
	"is_default",
}

type submissionTableModel struct {
	TeamID           int64         `db:"team_id"`
	Gameweek         int           `db:"gameweek"`
	StartingIDs      pq.Int64Array `db:"starting_ids"`
	BenchIDs         pq.Int64Array `db:"bench_ids"`
	CaptainID        int64         `db:"captain_id"`
	ViceCaptainID    int64         `db:"vice_captain_id"`
	ClubMultiplierID int64         `db:"club_multiplier_id"`
	Chip             string        `db:"chip"`
	SubmittedAt      time.Time     `db:"submitted_at"`
	Compliance       string        `db:"compliance"`
	IsDefault        bool          `db:"is_default"`
}

type submissionHistoryTableModel struct {
	ID int64 `db:"id"`
	submissionTableModel
}

type chipUsageTableModel struct {
	TeamID   int64     `db:"team_id"`
	Chip     string    `db:"chip"`
	Gameweek int       `db:"gameweek"`
	UsedAt   time.Time `db:"used_at"`
}

type gameweekPointsTableModel struct {
	TeamID             int64     `db:"team_id"`
	Gameweek           int       `db:"gameweek"`
	BasePoints         int64     `db:"base_points"`
	FinalPoints        int64     `db:"final_points"`
	Chip               string    `db:"chip"`
	EffectiveCaptainID int64     `db:"effective_captain_id"`
	Substitutions      string    `db:"substitutions"`
	Rank               int       `db:"rank"`
	CalculatedAt       time.Time `db:"calculated_at"`
}

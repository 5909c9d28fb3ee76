package postgres

import (
	"database/sql"
	"time"
)

var auctionSelectColumns = []string{
	"id",
	"draft_id",
	"kind",
	"subject_id",
	"current_bid",
	"current_bidder_id",
	"status",
	"started_by",
	"selling_stage",
	"wait_requested_by",
	"bid_count",
	"restart_count",
	"version",
	"created_at",
	"updated_at",
	"completed_at",
}

type auctionTableModel struct {
	ID              int64        `db:"id"`
	DraftID         int64        `db:"draft_id"`
	Kind            string       `db:"kind"`
	SubjectID       int64        `db:"subject_id"`
	CurrentBid      int64        `db:"current_bid"`
	CurrentBidderID int64        `db:"current_bidder_id"`
	Status          string       `db:"status"`
	StartedBy       int64        `db:"started_by"`
	SellingStage    string       `db:"selling_stage"`
	WaitRequestedBy int64        `db:"wait_requested_by"`
	BidCount        int          `db:"bid_count"`
	RestartCount    int          `db:"restart_count"`
	Version         int64        `db:"version"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
	CompletedAt     sql.NullTime `db:"completed_at"`
}

type auctionInsertModel struct {
	DraftID         int64     `db:"draft_id"`
	Kind            string    `db:"kind"`
	SubjectID       int64     `db:"subject_id"`
	CurrentBid      int64     `db:"current_bid"`
	CurrentBidderID int64     `db:"current_bidder_id"`
	Status          string    `db:"status"`
	StartedBy       int64     `db:"started_by"`
	BidCount        int       `db:"bid_count"`
	Version         int64     `db:"version"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type bidTableModel struct {
	ID        int64     `db:"id"`
	AuctionID int64     `db:"auction_id"`
	TeamID    int64     `db:"team_id"`
	Amount    int64     `db:"amount"`
	IsAuto    bool      `db:"is_auto"`
	CreatedAt time.Time `db:"created_at"`
}

type bidInsertModel struct {
	AuctionID int64     `db:"auction_id"`
	TeamID    int64     `db:"team_id"`
	Amount    int64     `db:"amount"`
	IsAuto    bool      `db:"is_auto"`
	CreatedAt time.Time `db:"created_at"`
}

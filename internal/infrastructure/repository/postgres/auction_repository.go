package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	qb "github.com/riskibarqy/fantasy-auction/internal/platform/querybuilder"
)

const auctionSingleActiveIndex = "uq_auctions_single_active"

// AuctionRepository keeps the auction ledger. Every write locks the auction row
// and commits its budget and squad side effects in the same transaction.
type AuctionRepository struct {
	db *sqlx.DB
}

func NewAuctionRepository(db *sqlx.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

func (r *AuctionRepository) GetByID(ctx context.Context, auctionID int64) (auction.Auction, bool, error) {
	return r.getOne(ctx, "get auction", qb.Eq("id", auctionID))
}

func (r *AuctionRepository) GetActive(ctx context.Context) (auction.Auction, bool, error) {
	return r.getOne(ctx, "get active auction", qb.Eq("status", string(auction.StatusActive)))
}

func (r *AuctionRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (auction.Auction, bool, error) {
	query, args, err := qb.Select(auctionSelectColumns...).From("auctions").
		Where(conds...).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return auction.Auction{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row auctionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return auction.Auction{}, false, nil
		}
		return auction.Auction{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return auctionFromRow(row), true, nil
}

func (r *AuctionRepository) ListCompleted(ctx context.Context, draftID int64) ([]auction.Auction, error) {
	query, args, err := qb.Select(auctionSelectColumns...).From("auctions").
		Where(
			qb.Eq("draft_id", draftID),
			qb.Eq("status", string(auction.StatusCompleted)),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list completed auctions query: %w", err)
	}

	var rows []auctionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list completed auctions: %w", err)
	}

	out := make([]auction.Auction, 0, len(rows))
	for _, row := range rows {
		out = append(out, auctionFromRow(row))
	}
	return out, nil
}

func (r *AuctionRepository) ListBids(ctx context.Context, auctionID int64) ([]auction.Bid, error) {
	query, args, err := qb.Select("*").From("bids").
		Where(qb.Eq("auction_id", auctionID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list bids query: %w", err)
	}

	var rows []bidTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	out := make([]auction.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, bidFromRow(row))
	}
	return out, nil
}

func (r *AuctionRepository) Create(ctx context.Context, a auction.Auction, opening auction.Bid) (auction.Auction, error) {
	err := withTx(ctx, r.db, "create auction", func(tx *sqlx.Tx) error {
		active, ok, err := selectAuction(ctx, tx, qb.Eq("status", string(auction.StatusActive)))
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("%w: auction %d is active", auction.ErrAuctionInProgress, active.ID)
		}
		if _, owned, err := getSquadItem(ctx, tx, a.DraftID, a.Kind, a.SubjectID); err != nil {
			return err
		} else if owned {
			return fmt.Errorf("%w: %s", auction.ErrAlreadyOwned, squad.SubjectKey(a.Kind, a.SubjectID))
		}

		query, args, err := qb.InsertModel("auctions", auctionInsertModel{
			DraftID:         a.DraftID,
			Kind:            string(a.Kind),
			SubjectID:       a.SubjectID,
			CurrentBid:      a.CurrentBid,
			CurrentBidderID: a.CurrentBidderID,
			Status:          string(a.Status),
			StartedBy:       a.StartedBy,
			BidCount:        a.BidCount,
			Version:         a.Version,
			CreatedAt:       a.CreatedAt,
			UpdatedAt:       a.UpdatedAt,
		}, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert auction query: %w", err)
		}
		if err := tx.GetContext(ctx, &a.ID, query, args...); err != nil {
			if isUniqueViolation(err, auctionSingleActiveIndex) {
				return fmt.Errorf("%w: concurrent auction start", auction.ErrAuctionInProgress)
			}
			return fmt.Errorf("insert auction: %w", err)
		}

		opening.AuctionID = a.ID
		return insertBid(ctx, tx, opening)
	})
	if err != nil {
		return auction.Auction{}, err
	}
	return a, nil
}

func (r *AuctionRepository) ApplyBid(ctx context.Context, auctionID, expectedVersion int64, bid auction.Bid) (auction.Auction, error) {
	var out auction.Auction
	err := withTx(ctx, r.db, "apply bid", func(tx *sqlx.Tx) error {
		a, err := lockActiveAuction(ctx, tx, auctionID)
		if err != nil {
			return err
		}
		if a.Version != expectedVersion {
			return fmt.Errorf("%w: auction %d at version %d, expected %d", auction.ErrStaleAuction, auctionID, a.Version, expectedVersion)
		}
		if err := auction.ValidateBidAmount(a, bid.Amount); err != nil {
			return err
		}

		a.CurrentBid = bid.Amount
		a.CurrentBidderID = bid.TeamID
		a.SellingStage = auction.SellingStageNone
		a.WaitRequestedBy = 0
		a.BidCount++
		a.UpdatedAt = bid.CreatedAt
		if out, err = updateAuction(ctx, tx, a); err != nil {
			return err
		}

		bid.AuctionID = a.ID
		return insertBid(ctx, tx, bid)
	})
	if err != nil {
		return auction.Auction{}, err
	}
	return out, nil
}

func (r *AuctionRepository) Complete(ctx context.Context, auctionID int64, completedAt time.Time) (auction.Auction, squad.Item, error) {
	var (
		out  auction.Auction
		item squad.Item
	)
	err := withTx(ctx, r.db, "complete auction", func(tx *sqlx.Tx) error {
		a, err := lockActiveAuction(ctx, tx, auctionID)
		if err != nil {
			return err
		}
		if !a.HasBidder() {
			return fmt.Errorf("%w: auction %d", auction.ErrNoBids, auctionID)
		}

		winner, ok, err := lockTeam(ctx, tx, a.CurrentBidderID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("winning team %d not found", a.CurrentBidderID)
		}
		if winner.Budget < a.CurrentBid {
			return fmt.Errorf("%w: team %d has %d, price %d", auction.ErrInsufficientBudget, winner.ID, winner.Budget, a.CurrentBid)
		}

		item = squad.Item{
			DraftID:    a.DraftID,
			TeamID:     winner.ID,
			Kind:       a.Kind,
			SubjectID:  a.SubjectID,
			PricePaid:  a.CurrentBid,
			AcquiredAt: completedAt,
		}
		query, args, err := qb.InsertModel("squad_items", squadItemTableModel{
			DraftID:    item.DraftID,
			TeamID:     item.TeamID,
			Kind:       string(item.Kind),
			SubjectID:  item.SubjectID,
			PricePaid:  item.PricePaid,
			AcquiredAt: item.AcquiredAt,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert squad item query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err, squadItemSubjectIndex) {
				return fmt.Errorf("%w: %s", auction.ErrAlreadyOwned, item.Key())
			}
			return fmt.Errorf("insert squad item: %w", err)
		}

		if err := adjustTeamBudget(ctx, tx, winner.ID, -a.CurrentBid); err != nil {
			return err
		}

		a.Status = auction.StatusCompleted
		a.SellingStage = auction.SellingStageNone
		a.WaitRequestedBy = 0
		a.CompletedAt = &completedAt
		a.UpdatedAt = completedAt
		out, err = updateAuction(ctx, tx, a)
		return err
	})
	if err != nil {
		return auction.Auction{}, squad.Item{}, err
	}
	return out, item, nil
}

func (r *AuctionRepository) Restart(ctx context.Context, auctionID int64, at time.Time) (auction.Auction, error) {
	var out auction.Auction
	err := withTx(ctx, r.db, "restart auction", func(tx *sqlx.Tx) error {
		a, ok, err := selectAuction(ctx, tx, qb.Eq("id", auctionID))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: auction %d", auction.ErrNotFound, auctionID)
		}
		if a.Status != auction.StatusCompleted {
			return fmt.Errorf("%w: auction %d", auction.ErrNotCompleted, auctionID)
		}
		if active, ok, err := selectAuction(ctx, tx, qb.Eq("status", string(auction.StatusActive))); err != nil {
			return err
		} else if ok {
			return fmt.Errorf("%w: auction %d is active", auction.ErrAuctionInProgress, active.ID)
		}

		var removed []squadItemTableModel
		if err := tx.SelectContext(ctx, &removed, `
DELETE FROM squad_items
WHERE draft_id = $1
  AND kind = $2
  AND subject_id = $3
RETURNING draft_id, team_id, kind, subject_id, price_paid, acquired_at`, a.DraftID, string(a.Kind), a.SubjectID); err != nil {
			return fmt.Errorf("delete squad item for auction %d: %w", auctionID, err)
		}
		for _, item := range removed {
			if err := adjustTeamBudget(ctx, tx, item.TeamID, item.PricePaid); err != nil {
				return err
			}
		}

		a.Status = auction.StatusActive
		a.CompletedAt = nil
		a.SellingStage = auction.SellingStageNone
		a.WaitRequestedBy = 0
		a.RestartCount++
		a.UpdatedAt = at
		out, err = updateAuction(ctx, tx, a)
		if isUniqueViolation(err, auctionSingleActiveIndex) {
			return fmt.Errorf("%w: concurrent auction start", auction.ErrAuctionInProgress)
		}
		return err
	})
	if err != nil {
		return auction.Auction{}, err
	}
	return out, nil
}

func (r *AuctionRepository) CancelLastBid(ctx context.Context, auctionID int64, at time.Time) (auction.Auction, auction.Bid, error) {
	var (
		out     auction.Auction
		removed auction.Bid
	)
	err := withTx(ctx, r.db, "cancel last bid", func(tx *sqlx.Tx) error {
		a, err := lockActiveAuction(ctx, tx, auctionID)
		if err != nil {
			return err
		}

		query, args, err := qb.Select("*").From("bids").
			Where(qb.Eq("auction_id", auctionID)).
			OrderBy("id DESC").
			Limit(2).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build select last bids query: %w", err)
		}
		var last []bidTableModel
		if err := tx.SelectContext(ctx, &last, query, args...); err != nil {
			return fmt.Errorf("select last bids: %w", err)
		}
		if len(last) < 2 {
			return fmt.Errorf("%w: only the opening bid remains on auction %d", auction.ErrNoBids, auctionID)
		}

		deleteQuery, deleteArgs, err := qb.DeleteFrom("bids").Where(qb.Eq("id", last[0].ID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete bid query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete bid %d: %w", last[0].ID, err)
		}
		removed = bidFromRow(last[0])

		var remaining int
		if err := tx.GetContext(ctx, &remaining, `SELECT COUNT(1) FROM bids WHERE auction_id = $1`, auctionID); err != nil {
			return fmt.Errorf("count bids: %w", err)
		}

		a.CurrentBid = last[1].Amount
		a.CurrentBidderID = last[1].TeamID
		a.BidCount = remaining
		a.SellingStage = auction.SellingStageNone
		a.WaitRequestedBy = 0
		a.UpdatedAt = at
		out, err = updateAuction(ctx, tx, a)
		return err
	})
	if err != nil {
		return auction.Auction{}, auction.Bid{}, err
	}
	return out, removed, nil
}

func (r *AuctionRepository) UpdateCeremony(ctx context.Context, auctionID int64, stage auction.SellingStage, waitRequestedBy int64, at time.Time) (auction.Auction, error) {
	var out auction.Auction
	err := withTx(ctx, r.db, "update selling ceremony", func(tx *sqlx.Tx) error {
		a, err := lockActiveAuction(ctx, tx, auctionID)
		if err != nil {
			return err
		}
		a.SellingStage = stage
		a.WaitRequestedBy = waitRequestedBy
		a.UpdatedAt = at
		out, err = updateAuction(ctx, tx, a)
		return err
	})
	if err != nil {
		return auction.Auction{}, err
	}
	return out, nil
}

func selectAuction(ctx context.Context, tx *sqlx.Tx, cond qb.Condition) (auction.Auction, bool, error) {
	query, args, err := qb.Select(auctionSelectColumns...).From("auctions").
		Where(cond).
		OrderBy("id").
		Limit(1).
		ForUpdate().
		ToSQL()
	if err != nil {
		return auction.Auction{}, false, fmt.Errorf("build lock auction query: %w", err)
	}

	var row auctionTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return auction.Auction{}, false, nil
		}
		return auction.Auction{}, false, fmt.Errorf("lock auction: %w", err)
	}
	return auctionFromRow(row), true, nil
}

func lockActiveAuction(ctx context.Context, tx *sqlx.Tx, auctionID int64) (auction.Auction, error) {
	a, ok, err := selectAuction(ctx, tx, qb.Eq("id", auctionID))
	if err != nil {
		return auction.Auction{}, err
	}
	if !ok {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrNotFound, auctionID)
	}
	if !a.IsActive() {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrAuctionNotActive, auctionID)
	}
	return a, nil
}

// updateAuction writes a and bumps its version; the stored version must still
// match a.Version.
func updateAuction(ctx context.Context, tx *sqlx.Tx, a auction.Auction) (auction.Auction, error) {
	query, args, err := qb.Update("auctions").
		Set("current_bid", a.CurrentBid).
		Set("current_bidder_id", a.CurrentBidderID).
		Set("status", string(a.Status)).
		Set("selling_stage", string(a.SellingStage)).
		Set("wait_requested_by", a.WaitRequestedBy).
		Set("bid_count", a.BidCount).
		Set("restart_count", a.RestartCount).
		Set("updated_at", a.UpdatedAt).
		Set("completed_at", nullTime(a.CompletedAt)).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("id", a.ID),
			qb.Eq("version", a.Version),
		).
		Suffix("RETURNING " + strings.Join(auctionSelectColumns, ", ")).
		ToSQL()
	if err != nil {
		return auction.Auction{}, fmt.Errorf("build update auction query: %w", err)
	}

	var row auctionTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrStaleAuction, a.ID)
		}
		return auction.Auction{}, fmt.Errorf("update auction %d: %w", a.ID, err)
	}
	return auctionFromRow(row), nil
}

func insertBid(ctx context.Context, tx *sqlx.Tx, b auction.Bid) error {
	query, args, err := qb.InsertModel("bids", bidInsertModel{
		AuctionID: b.AuctionID,
		TeamID:    b.TeamID,
		Amount:    b.Amount,
		IsAuto:    b.IsAuto,
		CreatedAt: b.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert bid query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert bid on auction %d: %w", b.AuctionID, err)
	}
	return nil
}

func auctionFromRow(row auctionTableModel) auction.Auction {
	return auction.Auction{
		ID:              row.ID,
		DraftID:         row.DraftID,
		Kind:            squad.Kind(row.Kind),
		SubjectID:       row.SubjectID,
		CurrentBid:      row.CurrentBid,
		CurrentBidderID: row.CurrentBidderID,
		Status:          auction.Status(row.Status),
		StartedBy:       row.StartedBy,
		SellingStage:    auction.SellingStage(row.SellingStage),
		WaitRequestedBy: row.WaitRequestedBy,
		BidCount:        row.BidCount,
		RestartCount:    row.RestartCount,
		Version:         row.Version,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		CompletedAt:     timePtr(row.CompletedAt),
	}
}

func bidFromRow(row bidTableModel) auction.Bid {
	return auction.Bid{
		ID:        row.ID,
		AuctionID: row.AuctionID,
		TeamID:    row.TeamID,
		Amount:    row.Amount,
		IsAuto:    row.IsAuto,
		CreatedAt: row.CreatedAt,
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	idgen "github.com/riskibarqy/fantasy-auction/internal/platform/id"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

const defaultBidRetries = 3

type StartAuctionInput struct {
	TeamID    int64
	Kind      squad.Kind
	SubjectID int64
}

type PlaceBidInput struct {
	AuctionID int64
	TeamID    int64
	Amount    int64
}

// AuctionView is an auction with its subject resolved and its bid history.
type AuctionView struct {
	Auction       auction.Auction
	Player        *player.Player
	Club          *club.Club
	CurrentBidder *team.Team
	Bids          []auction.Bid
}

type CompleteAuctionResult struct {
	Auction auction.Auction
	Item    squad.Item
	Draft   draft.AdvanceResult
}

type AuctionService struct {
	auctions auction.Repository
	teams    team.Repository
	players  player.Repository
	clubs    club.Repository
	rosters  rosterLoader
	drafts   *DraftService
	resolver *DraftResolver
	breaks   *BreakService
	rules    squad.Rules
	events   eventSink
	logger   *logging.Logger
	now      func() time.Time
	retries  int
}

func NewAuctionService(
	auctions auction.Repository,
	teams team.Repository,
	players player.Repository,
	clubs club.Repository,
	squads squad.Repository,
	drafts *DraftService,
	resolver *DraftResolver,
	breaks *BreakService,
	rules squad.Rules,
	publisher broadcast.Publisher,
	ids idgen.Generator,
	logger *logging.Logger,
) *AuctionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuctionService{
		auctions: auctions,
		teams:    teams,
		players:  players,
		clubs:    clubs,
		rosters:  rosterLoader{squads: squads, players: players},
		drafts:   drafts,
		resolver: resolver,
		breaks:   breaks,
		rules:    rules,
		events:   newEventSink(publisher, ids, logger),
		logger:   logger,
		now:      time.Now,
		retries:  defaultBidRetries,
	}
}

func (s *AuctionService) StartAuction(ctx context.Context, input StartAuctionInput) (AuctionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.StartAuction")
	defer span.End()

	if input.TeamID <= 0 || input.SubjectID <= 0 {
		return AuctionView{}, fmt.Errorf("%w: team id and subject id are required", ErrInvalidInput)
	}
	if _, err := squad.ParseKind(string(input.Kind)); err != nil {
		return AuctionView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.breaks.OnBreak() {
		return AuctionView{}, fmt.Errorf("%w: cannot start an auction", ErrOnBreak)
	}

	d, err := s.resolver.Active(ctx)
	if err != nil {
		return AuctionView{}, err
	}

	canStart, err := s.drafts.CanStartAuction(ctx, input.TeamID)
	if err != nil {
		return AuctionView{}, err
	}
	if !canStart {
		return AuctionView{}, fmt.Errorf("%w: team %d", auction.ErrNotYourTurn, input.TeamID)
	}

	if active, ok, err := s.auctions.GetActive(ctx); err != nil {
		return AuctionView{}, fmt.Errorf("get active auction: %w", err)
	} else if ok {
		return AuctionView{}, fmt.Errorf("%w: auction %d is active", auction.ErrAuctionInProgress, active.ID)
	}

	t, err := s.getTeam(ctx, input.TeamID)
	if err != nil {
		return AuctionView{}, err
	}
	if t.Budget < auction.MinBid {
		return AuctionView{}, fmt.Errorf("%w: team %d has %d", auction.ErrInsufficientBudget, t.ID, t.Budget)
	}

	view := AuctionView{CurrentBidder: &t}
	if err := s.resolveSubject(ctx, input.Kind, input.SubjectID, &view); err != nil {
		return AuctionView{}, err
	}
	if owner, owned, err := s.rosters.squads.GetBySubject(ctx, d.ID, input.Kind, input.SubjectID); err != nil {
		return AuctionView{}, fmt.Errorf("get squad item: %w", err)
	} else if owned {
		return AuctionView{}, fmt.Errorf("%w: %s belongs to team %d", auction.ErrAlreadyOwned, owner.Key(), owner.TeamID)
	}
	if err := s.checkEligibility(ctx, d.ID, input.TeamID, input.Kind, view); err != nil {
		return AuctionView{}, err
	}

	now := s.now().UTC()
	a, opening := auction.NewOpening(d.ID, input.Kind, input.SubjectID, input.TeamID, now)
	created, err := s.auctions.Create(ctx, a, opening)
	if err != nil {
		return AuctionView{}, fmt.Errorf("create auction: %w", err)
	}
	view.Auction = created

	bids, err := s.auctions.ListBids(ctx, created.ID)
	if err != nil {
		return AuctionView{}, fmt.Errorf("list bids: %w", err)
	}
	view.Bids = bids

	s.logger.InfoContext(ctx, "auction started",
		"auction_id", created.ID,
		"kind", string(created.Kind),
		"subject_id", created.SubjectID,
		"team_id", input.TeamID,
	)
	s.events.emit(ctx, broadcast.EventAuctionStarted, view, now)

	return view, nil
}

func (s *AuctionService) PlaceBid(ctx context.Context, input PlaceBidInput) (auction.Auction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.PlaceBid")
	defer span.End()

	if s.breaks.OnBreak() {
		return auction.Auction{}, fmt.Errorf("%w: bidding is paused", ErrOnBreak)
	}
	return s.placeBid(ctx, input, false)
}

// placeBid is shared by manual and automated bids. The budget check is a plain
// ceiling; the slot reservation is applied by the auto-bid engine before it
// gets here.
func (s *AuctionService) placeBid(ctx context.Context, input PlaceBidInput, isAuto bool) (auction.Auction, error) {
	if input.AuctionID <= 0 || input.TeamID <= 0 {
		return auction.Auction{}, fmt.Errorf("%w: auction id and team id are required", ErrInvalidInput)
	}
	if input.Amount < auction.MinBid || input.Amount%auction.BidIncrement != 0 {
		return auction.Auction{}, fmt.Errorf("%w: amount must be a positive multiple of %d", auction.ErrInvalidAmount, auction.BidIncrement)
	}

	t, err := s.getTeam(ctx, input.TeamID)
	if err != nil {
		return auction.Auction{}, err
	}
	if input.Amount > t.Budget {
		return auction.Auction{}, fmt.Errorf("%w: bid %d exceeds budget %d", auction.ErrInsufficientBudget, input.Amount, t.Budget)
	}

	current, err := s.getActiveAuction(ctx, input.AuctionID)
	if err != nil {
		return auction.Auction{}, err
	}
	if err := s.checkEligibility(ctx, current.DraftID, t.ID, current.Kind, AuctionView{Auction: current}); err != nil {
		return auction.Auction{}, err
	}

	for attempt := 0; ; attempt++ {
		if err := auction.ValidateBidAmount(current, input.Amount); err != nil {
			return auction.Auction{}, err
		}

		now := s.now().UTC()
		updated, err := s.auctions.ApplyBid(ctx, current.ID, current.Version, auction.Bid{
			TeamID:    t.ID,
			Amount:    input.Amount,
			IsAuto:    isAuto,
			CreatedAt: now,
		})
		if err == nil {
			s.events.emit(ctx, broadcast.EventNewBid, map[string]any{
				"auctionId": updated.ID,
				"teamId":    t.ID,
				"teamName":  t.Name,
				"bidAmount": input.Amount,
				"bidCount":  updated.BidCount,
				"isAuto":    isAuto,
				"timestamp": now,
			}, now)
			return updated, nil
		}
		// An automated bid was decided against the state it read; the next
		// tick re-evaluates instead of retrying here.
		if !errors.Is(err, auction.ErrStaleAuction) || isAuto || attempt+1 >= s.retries {
			return auction.Auction{}, fmt.Errorf("apply bid: %w", err)
		}

		current, err = s.getActiveAuction(ctx, input.AuctionID)
		if err != nil {
			return auction.Auction{}, err
		}
	}
}

func (s *AuctionService) CompleteAuction(ctx context.Context, auctionID int64) (CompleteAuctionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.CompleteAuction")
	defer span.End()

	current, err := s.getActiveAuction(ctx, auctionID)
	if err != nil {
		return CompleteAuctionResult{}, err
	}
	if !current.HasBidder() {
		return CompleteAuctionResult{}, fmt.Errorf("%w: auction %d", auction.ErrNoBids, auctionID)
	}

	now := s.now().UTC()
	completed, item, err := s.auctions.Complete(ctx, auctionID, now)
	if err != nil {
		return CompleteAuctionResult{}, fmt.Errorf("complete auction: %w", err)
	}

	s.logger.InfoContext(ctx, "auction completed",
		"auction_id", completed.ID,
		"winner_id", item.TeamID,
		"price", item.PricePaid,
	)
	s.events.emit(ctx, broadcast.EventAuctionCompleted, map[string]any{
		"auctionId":  completed.ID,
		"winnerId":   item.TeamID,
		"finalPrice": item.PricePaid,
		"type":       string(completed.Kind),
		"subjectId":  completed.SubjectID,
	}, now)

	result := CompleteAuctionResult{Auction: completed, Item: item}
	if completed.WasRestarted() {
		s.logger.InfoContext(ctx, "restarted auction re-completed, draft turn kept", "auction_id", completed.ID)
		return result, nil
	}
	advance, err := s.drafts.Advance(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "advance draft turn failed", "auction_id", completed.ID, "error", err)
		return result, nil
	}
	result.Draft = advance
	return result, nil
}

// RestartAuction reopens a completed auction at its final bid. With auctionID 0
// the most recently completed auction of the active draft is used.
func (s *AuctionService) RestartAuction(ctx context.Context, auctionID int64) (auction.Auction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.RestartAuction")
	defer span.End()

	if auctionID <= 0 {
		last, err := s.lastCompleted(ctx)
		if err != nil {
			return auction.Auction{}, err
		}
		auctionID = last.ID
	}

	now := s.now().UTC()
	restarted, err := s.auctions.Restart(ctx, auctionID, now)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("restart auction: %w", err)
	}

	s.logger.WarnContext(ctx, "auction restarted", "auction_id", restarted.ID, "bidder_id", restarted.CurrentBidderID)
	s.events.emit(ctx, broadcast.EventAuctionRestarted, restarted, now)
	return restarted, nil
}

func (s *AuctionService) CancelLastBid(ctx context.Context, auctionID int64) (auction.Auction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.CancelLastBid")
	defer span.End()

	now := s.now().UTC()
	restored, removed, err := s.auctions.CancelLastBid(ctx, auctionID, now)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("cancel last bid: %w", err)
	}

	s.logger.WarnContext(ctx, "bid cancelled", "auction_id", restored.ID, "team_id", removed.TeamID, "amount", removed.Amount)
	s.events.emit(ctx, broadcast.EventBidCancelled, map[string]any{
		"auctionId":       restored.ID,
		"cancelledTeamId": removed.TeamID,
		"cancelledAmount": removed.Amount,
		"currentBid":      restored.CurrentBid,
		"currentBidderId": restored.CurrentBidderID,
	}, now)
	return restored, nil
}

func (s *AuctionService) SetSellingStage(ctx context.Context, auctionID int64, stage string) (auction.Auction, error) {
	parsed, err := auction.ParseSellingStage(stage)
	if err != nil {
		return auction.Auction{}, err
	}
	current, err := s.getActiveAuction(ctx, auctionID)
	if err != nil {
		return auction.Auction{}, err
	}

	now := s.now().UTC()
	updated, err := s.auctions.UpdateCeremony(ctx, current.ID, parsed, current.WaitRequestedBy, now)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("update selling stage: %w", err)
	}
	s.events.emit(ctx, broadcast.EventSellingStageUpdated, map[string]any{
		"auctionId":    updated.ID,
		"sellingStage": string(updated.SellingStage),
	}, now)
	return updated, nil
}

func (s *AuctionService) RequestWait(ctx context.Context, auctionID, teamID int64) (auction.Auction, error) {
	if teamID <= 0 {
		return auction.Auction{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	current, err := s.getActiveAuction(ctx, auctionID)
	if err != nil {
		return auction.Auction{}, err
	}
	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return auction.Auction{}, err
	}

	now := s.now().UTC()
	updated, err := s.auctions.UpdateCeremony(ctx, current.ID, current.SellingStage, teamID, now)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("request wait: %w", err)
	}
	s.events.emit(ctx, broadcast.EventWaitRequested, map[string]any{
		"auctionId": updated.ID,
		"teamId":    t.ID,
		"teamName":  t.Name,
	}, now)
	return updated, nil
}

// ResolveWait answers a pending wait request. Accepting clears the selling stage
// as well; rejecting clears only the request.
func (s *AuctionService) ResolveWait(ctx context.Context, auctionID int64, accept bool) (auction.Auction, error) {
	current, err := s.getActiveAuction(ctx, auctionID)
	if err != nil {
		return auction.Auction{}, err
	}
	if current.WaitRequestedBy == 0 {
		return auction.Auction{}, fmt.Errorf("%w: no wait request pending on auction %d", ErrInvalidInput, auctionID)
	}

	stage := current.SellingStage
	eventType := broadcast.EventWaitRejected
	if accept {
		stage = auction.SellingStageNone
		eventType = broadcast.EventWaitAccepted
	}

	now := s.now().UTC()
	updated, err := s.auctions.UpdateCeremony(ctx, current.ID, stage, 0, now)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("resolve wait: %w", err)
	}
	s.events.emit(ctx, eventType, map[string]any{
		"auctionId":   updated.ID,
		"requestedBy": current.WaitRequestedBy,
	}, now)
	return updated, nil
}

// Active returns the active auction, if any, with subject and bids.
func (s *AuctionService) Active(ctx context.Context) (AuctionView, bool, error) {
	a, ok, err := s.auctions.GetActive(ctx)
	if err != nil {
		return AuctionView{}, false, fmt.Errorf("get active auction: %w", err)
	}
	if !ok {
		return AuctionView{}, false, nil
	}

	view := AuctionView{Auction: a}
	if err := s.resolveSubject(ctx, a.Kind, a.SubjectID, &view); err != nil {
		return AuctionView{}, false, err
	}
	if a.HasBidder() {
		if t, ok, err := s.teams.GetByID(ctx, a.CurrentBidderID); err != nil {
			return AuctionView{}, false, fmt.Errorf("get bidder: %w", err)
		} else if ok {
			view.CurrentBidder = &t
		}
	}
	bids, err := s.auctions.ListBids(ctx, a.ID)
	if err != nil {
		return AuctionView{}, false, fmt.Errorf("list bids: %w", err)
	}
	view.Bids = bids
	return view, true, nil
}

func (s *AuctionService) ListCompleted(ctx context.Context) ([]auction.Auction, error) {
	d, err := s.resolver.Active(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.auctions.ListCompleted(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("list completed auctions: %w", err)
	}
	return items, nil
}

func (s *AuctionService) ListBids(ctx context.Context, auctionID int64) ([]auction.Bid, error) {
	if _, ok, err := s.auctions.GetByID(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("get auction: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("%w: auction %d", ErrNotFound, auctionID)
	}
	bids, err := s.auctions.ListBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}

func (s *AuctionService) lastCompleted(ctx context.Context) (auction.Auction, error) {
	items, err := s.ListCompleted(ctx)
	if err != nil {
		return auction.Auction{}, err
	}
	if len(items) == 0 {
		return auction.Auction{}, fmt.Errorf("%w: no completed auction to restart", ErrNotFound)
	}
	last := items[0]
	for _, a := range items[1:] {
		if a.CompletedAt != nil && (last.CompletedAt == nil || !a.CompletedAt.Before(*last.CompletedAt)) {
			last = a
		}
	}
	return last, nil
}

func (s *AuctionService) getActiveAuction(ctx context.Context, auctionID int64) (auction.Auction, error) {
	a, ok, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("get auction: %w", err)
	}
	if !ok || !a.IsActive() {
		return auction.Auction{}, fmt.Errorf("%w: auction %d", auction.ErrAuctionNotActive, auctionID)
	}
	return a, nil
}

func (s *AuctionService) getTeam(ctx context.Context, teamID int64) (team.Team, error) {
	t, ok, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}
	return t, nil
}

func (s *AuctionService) resolveSubject(ctx context.Context, kind squad.Kind, subjectID int64, view *AuctionView) error {
	clubID := subjectID
	if kind == squad.KindPlayer {
		p, ok, err := s.players.GetByID(ctx, subjectID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: player %d", ErrNotFound, subjectID)
		}
		view.Player = &p
		clubID = p.ClubID
	}

	c, ok, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return fmt.Errorf("get club: %w", err)
	}
	if ok {
		view.Club = &c
	} else if kind == squad.KindClub {
		return fmt.Errorf("%w: club %d", ErrNotFound, subjectID)
	}
	return nil
}

// checkEligibility applies the squad limits to the team that would own the
// subject if the auction closed now.
func (s *AuctionService) checkEligibility(ctx context.Context, draftID, teamID int64, kind squad.Kind, view AuctionView) error {
	roster, _, err := s.rosters.load(ctx, draftID, teamID)
	if err != nil {
		return err
	}

	switch kind {
	case squad.KindClub:
		clubID := view.Auction.SubjectID
		if view.Club != nil {
			clubID = view.Club.ID
		}
		return squad.CanAcquireClub(roster, clubID, s.rules)
	default:
		subject := view.Player
		if subject == nil {
			p, ok, err := s.players.GetByID(ctx, view.Auction.SubjectID)
			if err != nil {
				return fmt.Errorf("get player: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: player %d", ErrNotFound, view.Auction.SubjectID)
			}
			subject = &p
		}
		return squad.CanAcquirePlayer(roster, *subject, s.rules)
	}
}

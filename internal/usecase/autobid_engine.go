package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/riskibarqy/fantasy-auction/internal/platform/resilience"
)

const (
	DefaultAutoBidInterval = 2 * time.Second
	autoBidFlightKey       = "autobid-tick"
	autoBidLockKey         = "fantasy-auction:autobid:tick"
)

// TickLocker guards a tick across processes. A nil locker means the process is
// the only bidder.
type TickLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

type AutoBidConfig struct {
	Interval time.Duration
	LockTTL  time.Duration
}

// AutoBidEngine places bids on behalf of teams with standing instructions.
type AutoBidEngine struct {
	configs  autobid.Repository
	auctions auction.Repository
	teams    team.Repository
	players  player.Repository
	rosters  rosterLoader
	bids     *AuctionService
	breaks   *BreakService
	rules    squad.Rules
	locker   TickLocker
	clock    clockwork.Clock
	flight   resilience.SingleFlight
	cfg      AutoBidConfig
	logger   *logging.Logger
	now      func() time.Time
}

type SaveAutoBidInput struct {
	TeamID       int64
	Enabled      bool
	Instructions []autobid.Instruction
}

// AutoBidView is a configuration with the team's advisory bid ceiling.
type AutoBidView struct {
	Config        autobid.Config
	MaxAllowedBid int64
}

type AutoBidStatus struct {
	TeamID           int64
	Enabled          bool
	InstructionCount int
	Budget           int64
	SquadSize        int
	MaxAllowedBid    int64
	Running          bool
	OnBreak          bool
}

func NewAutoBidEngine(
	configs autobid.Repository,
	auctions auction.Repository,
	teams team.Repository,
	players player.Repository,
	squads squad.Repository,
	bids *AuctionService,
	breaks *BreakService,
	rules squad.Rules,
	locker TickLocker,
	clock clockwork.Clock,
	cfg AutoBidConfig,
	logger *logging.Logger,
) *AutoBidEngine {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultAutoBidInterval
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = cfg.Interval
	}

	return &AutoBidEngine{
		configs:  configs,
		auctions: auctions,
		teams:    teams,
		players:  players,
		rosters:  rosterLoader{squads: squads, players: players},
		bids:     bids,
		breaks:   breaks,
		rules:    rules,
		locker:   locker,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Run ticks until ctx is cancelled. A tick that is still running when the next
// one is due causes that next tick to be dropped.
func (e *AutoBidEngine) Run(ctx context.Context) {
	ticker := e.clock.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	e.logger.InfoContext(ctx, "auto-bid loop started", "interval", e.cfg.Interval.String())
	for {
		select {
		case <-ctx.Done():
			e.logger.InfoContext(ctx, "auto-bid loop stopped")
			return
		case <-ticker.Chan():
			go e.runTick(ctx)
		}
	}
}

func (e *AutoBidEngine) runTick(ctx context.Context) {
	_, err, ran := e.flight.TryDo(autoBidFlightKey, func() (any, error) {
		return e.lockedTick(ctx)
	})
	if !ran {
		e.logger.DebugContext(ctx, "auto-bid tick skipped, previous tick still running")
		return
	}
	if err != nil {
		e.logger.WarnContext(ctx, "auto-bid tick failed", "error", err)
	}
}

func (e *AutoBidEngine) lockedTick(ctx context.Context) (autobid.TickResult, error) {
	if e.breaks.OnBreak() {
		return autobid.TickResult{}, nil
	}
	if e.locker == nil {
		return e.Tick(ctx)
	}

	release, ok, err := e.locker.TryLock(ctx, autoBidLockKey, e.cfg.LockTTL)
	if err != nil {
		return autobid.TickResult{}, fmt.Errorf("%w: acquire auto-bid lock: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return autobid.TickResult{}, nil
	}
	defer release()
	return e.Tick(ctx)
}

// Tick evaluates every enabled configuration in insertion order against the
// active player auction. The first team that passes every check bids one
// increment; the tick stops there.
func (e *AutoBidEngine) Tick(ctx context.Context) (autobid.TickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoBidEngine.Tick")
	defer span.End()

	a, ok, err := e.auctions.GetActive(ctx)
	if err != nil {
		return autobid.TickResult{}, fmt.Errorf("get active auction: %w", err)
	}
	if !ok || a.Kind != squad.KindPlayer {
		return autobid.TickResult{}, nil
	}

	subject, ok, err := e.players.GetByID(ctx, a.SubjectID)
	if err != nil {
		return autobid.TickResult{}, fmt.Errorf("get auction player: %w", err)
	}
	if !ok {
		return autobid.TickResult{}, fmt.Errorf("%w: player %d", ErrNotFound, a.SubjectID)
	}

	configs, err := e.configs.List(ctx)
	if err != nil {
		return autobid.TickResult{}, fmt.Errorf("list auto-bid configs: %w", err)
	}

	for _, cfg := range configs {
		if !cfg.Enabled || cfg.TeamID == a.CurrentBidderID {
			continue
		}

		decision, err := e.evaluate(ctx, cfg, a, subject)
		if err != nil {
			e.logger.WarnContext(ctx, "auto-bid evaluation failed", "team_id", cfg.TeamID, "auction_id", a.ID, "error", err)
			continue
		}
		if !decision.Bid {
			e.logger.DebugContext(ctx, "auto-bid skipped",
				"team_id", cfg.TeamID,
				"auction_id", a.ID,
				"reason", string(decision.Reason),
				"ceiling", decision.Ceiling,
			)
			continue
		}

		if _, err := e.bids.placeBid(ctx, PlaceBidInput{AuctionID: a.ID, TeamID: cfg.TeamID, Amount: decision.Amount}, true); err != nil {
			e.logger.WarnContext(ctx, "auto-bid rejected", "team_id", cfg.TeamID, "auction_id", a.ID, "amount", decision.Amount, "error", err)
			if errors.Is(err, auction.ErrStaleAuction) {
				return autobid.TickResult{}, nil
			}
			continue
		}

		e.logger.InfoContext(ctx, "auto-bid placed", "team_id", cfg.TeamID, "auction_id", a.ID, "amount", decision.Amount)
		return autobid.TickResult{Placed: true, TeamID: cfg.TeamID, Amount: decision.Amount, AuctionID: a.ID}, nil
	}

	return autobid.TickResult{}, nil
}

func (e *AutoBidEngine) evaluate(ctx context.Context, cfg autobid.Config, a auction.Auction, subject player.Player) (autobid.Decision, error) {
	t, ok, err := e.teams.GetByID(ctx, cfg.TeamID)
	if err != nil {
		return autobid.Decision{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return autobid.Decision{}, fmt.Errorf("%w: team %d", ErrNotFound, cfg.TeamID)
	}

	roster, _, err := e.rosters.load(ctx, a.DraftID, cfg.TeamID)
	if err != nil {
		return autobid.Decision{}, err
	}

	return autobid.Evaluate(autobid.Candidate{
		Config:  cfg,
		Budget:  t.Budget,
		Roster:  roster,
		Auction: a,
		Subject: subject,
		Rules:   e.rules,
	}), nil
}

func (e *AutoBidEngine) GetConfig(ctx context.Context, teamID int64) (AutoBidView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoBidEngine.GetConfig")
	defer span.End()

	if teamID <= 0 {
		return AutoBidView{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	cfg, ok, err := e.configs.GetByTeam(ctx, teamID)
	if err != nil {
		return AutoBidView{}, fmt.Errorf("get auto-bid config: %w", err)
	}
	if !ok {
		cfg = autobid.Config{TeamID: teamID}
	}

	maxAllowed, err := e.MaxAllowedBid(ctx, teamID)
	if err != nil {
		return AutoBidView{}, err
	}
	return AutoBidView{Config: cfg, MaxAllowedBid: maxAllowed}, nil
}

func (e *AutoBidEngine) SaveConfig(ctx context.Context, input SaveAutoBidInput) (AutoBidView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoBidEngine.SaveConfig")
	defer span.End()

	if _, ok, err := e.teams.GetByID(ctx, input.TeamID); err != nil {
		return AutoBidView{}, fmt.Errorf("get team: %w", err)
	} else if !ok {
		return AutoBidView{}, fmt.Errorf("%w: team %d", ErrNotFound, input.TeamID)
	}

	now := e.now().UTC()
	cfg := autobid.Config{
		TeamID:       input.TeamID,
		Enabled:      input.Enabled,
		Instructions: append([]autobid.Instruction(nil), input.Instructions...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := cfg.Validate(); err != nil {
		return AutoBidView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, in := range cfg.Instructions {
		if _, ok, err := e.players.GetByID(ctx, in.PlayerID); err != nil {
			return AutoBidView{}, fmt.Errorf("get player: %w", err)
		} else if !ok {
			return AutoBidView{}, fmt.Errorf("%w: player %d", ErrNotFound, in.PlayerID)
		}
	}

	if err := e.configs.Upsert(ctx, cfg); err != nil {
		return AutoBidView{}, fmt.Errorf("save auto-bid config: %w", err)
	}
	e.logger.InfoContext(ctx, "auto-bid config saved",
		"team_id", cfg.TeamID,
		"enabled", cfg.Enabled,
		"instructions", len(cfg.Instructions),
	)

	return e.GetConfig(ctx, input.TeamID)
}

func (e *AutoBidEngine) Status(ctx context.Context, teamID int64) (AutoBidStatus, error) {
	view, err := e.GetConfig(ctx, teamID)
	if err != nil {
		return AutoBidStatus{}, err
	}

	t, budget, size, err := e.budgetAndSize(ctx, teamID)
	if err != nil {
		return AutoBidStatus{}, err
	}

	return AutoBidStatus{
		TeamID:           t.ID,
		Enabled:          view.Config.Enabled,
		InstructionCount: len(view.Config.Instructions),
		Budget:           budget,
		SquadSize:        size,
		MaxAllowedBid:    view.MaxAllowedBid,
		Running:          e.flight.InFlight(autoBidFlightKey),
		OnBreak:          e.breaks.OnBreak(),
	}, nil
}

// MaxAllowedBid is the team's bid ceiling after reserving the minimum bid for
// every other unfilled slot.
func (e *AutoBidEngine) MaxAllowedBid(ctx context.Context, teamID int64) (int64, error) {
	_, budget, size, err := e.budgetAndSize(ctx, teamID)
	if err != nil {
		return 0, err
	}
	return squad.MaxAllowedBid(budget, size, squad.TotalSlots), nil
}

func (e *AutoBidEngine) budgetAndSize(ctx context.Context, teamID int64) (team.Team, int64, int, error) {
	t, ok, err := e.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, 0, 0, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return team.Team{}, 0, 0, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}

	d, err := e.bids.resolver.Active(ctx)
	if err != nil {
		return team.Team{}, 0, 0, err
	}
	items, err := e.rosters.squads.ListByTeam(ctx, d.ID, teamID)
	if err != nil {
		return team.Team{}, 0, 0, fmt.Errorf("list squad items: %w", err)
	}
	return t, t.Budget, len(items), nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	idgen "github.com/riskibarqy/fantasy-auction/internal/platform/id"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

const DefaultDraftRounds = 17

type DraftConfig struct {
	Rounds         int
	StartingBudget int64
}

// DraftView is the draft with its pointer and frozen order.
type DraftView struct {
	Draft draft.Draft
	State draft.State
	Order []draft.OrderEntry
}

type CreateDraftInput struct {
	Name        string
	Description string
	Activate    bool
}

type DraftService struct {
	drafts   draft.Repository
	teams    team.Repository
	squads   squad.Repository
	resolver *DraftResolver
	rules    squad.Rules
	cfg      DraftConfig
	events   eventSink
	logger   *logging.Logger
	now      func() time.Time

	// mu serializes pointer moves inside this process; the pointer only moves forward.
	mu      sync.Mutex
	shuffle func([]int64) []int64
}

func NewDraftService(
	drafts draft.Repository,
	teams team.Repository,
	squads squad.Repository,
	resolver *DraftResolver,
	rules squad.Rules,
	cfg DraftConfig,
	publisher broadcast.Publisher,
	ids idgen.Generator,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Rounds < 1 {
		cfg.Rounds = DefaultDraftRounds
	}
	if cfg.StartingBudget <= 0 {
		cfg.StartingBudget = team.StartingBudget
	}

	return &DraftService{
		drafts:   drafts,
		teams:    teams,
		squads:   squads,
		resolver: resolver,
		rules:    rules,
		cfg:      cfg,
		events:   newEventSink(publisher, ids, logger),
		logger:   logger,
		now:      time.Now,
		shuffle:  func(ids []int64) []int64 { return draft.Shuffle(ids, nil) },
	}
}

func (s *DraftService) InitializeOrder(ctx context.Context) ([]draft.OrderEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.InitializeOrder")
	defer span.End()

	d, err := s.resolver.Active(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamIDs := make([]int64, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	entries, err := draft.GenerateSnakeOrder(d.ID, s.shuffle(teamIDs), s.cfg.Rounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	state := draft.InitialState(d.ID, entries)
	state.UpdatedAt = s.now().UTC()
	if err := s.drafts.InitializeOrder(ctx, d.ID, entries, state); err != nil {
		return nil, fmt.Errorf("initialize draft order: %w", err)
	}

	s.logger.InfoContext(ctx, "draft order initialized", "draft_id", d.ID, "teams", len(teamIDs), "rounds", s.cfg.Rounds)
	s.events.emit(ctx, broadcast.EventDraftInitialized, map[string]any{
		"draftId":        d.ID,
		"totalPositions": len(entries),
		"currentTeamId":  state.CurrentTeamID,
	}, state.UpdatedAt)

	return entries, nil
}

func (s *DraftService) Start(ctx context.Context) (draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Start")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.resolver.Active(ctx)
	if err != nil {
		return draft.State{}, err
	}

	order, err := s.drafts.ListOrder(ctx, d.ID)
	if err != nil {
		return draft.State{}, fmt.Errorf("list draft order: %w", err)
	}
	if len(order) == 0 {
		return draft.State{}, fmt.Errorf("%w: draft %d", draft.ErrOrderEmpty, d.ID)
	}

	state, ok, err := s.drafts.GetState(ctx, d.ID)
	if err != nil {
		return draft.State{}, fmt.Errorf("get draft state: %w", err)
	}
	if !ok {
		state = draft.InitialState(d.ID, order)
	}
	if state.Active {
		return draft.State{}, fmt.Errorf("%w: draft %d", draft.ErrAlreadyActive, d.ID)
	}
	if state.EndedAt != nil {
		return draft.State{}, fmt.Errorf("%w: draft %d already completed, reset it first", ErrInvalidInput, d.ID)
	}

	now := s.now().UTC()
	state.Active = true
	state.StartedAt = &now
	state.UpdatedAt = now
	if err := s.drafts.SaveState(ctx, state); err != nil {
		return draft.State{}, fmt.Errorf("save draft state: %w", err)
	}

	s.events.emit(ctx, broadcast.EventDraftStarted, map[string]any{
		"draftId":         d.ID,
		"currentPosition": state.CurrentPosition,
		"currentTeamId":   state.CurrentTeamID,
	}, now)

	return state, nil
}

// Advance moves the pointer to the next team whose squad is incomplete. When
// no such team remains the draft is deactivated.
func (s *DraftService) Advance(ctx context.Context) (draft.AdvanceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Advance")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.resolver.Active(ctx)
	if err != nil {
		return draft.AdvanceResult{}, err
	}

	state, ok, err := s.drafts.GetState(ctx, d.ID)
	if err != nil {
		return draft.AdvanceResult{}, fmt.Errorf("get draft state: %w", err)
	}
	if !ok || !state.Active {
		return draft.AdvanceResult{}, fmt.Errorf("%w: draft %d", draft.ErrNotActive, d.ID)
	}

	order, err := s.drafts.ListOrder(ctx, d.ID)
	if err != nil {
		return draft.AdvanceResult{}, fmt.Errorf("list draft order: %w", err)
	}
	teamAt := make(map[int]int64, len(order))
	for _, e := range order {
		teamAt[e.Position] = e.TeamID
	}

	items, err := s.squads.ListByDraft(ctx, d.ID)
	if err != nil {
		return draft.AdvanceResult{}, fmt.Errorf("list squad items: %w", err)
	}
	rosters := squadCounts(items)

	result := draft.AdvanceResult{}
	position := state.CurrentPosition
	for i := 0; i < state.TotalPositions; i++ {
		position++
		if position > state.TotalPositions {
			break
		}
		teamID, ok := teamAt[position]
		if !ok {
			return draft.AdvanceResult{}, fmt.Errorf("%w: position %d", draft.ErrPositionAbsent, position)
		}
		if rosters[teamID].IsComplete(s.rules) {
			result.Skipped = append(result.Skipped, teamID)
			continue
		}
		result.HasNext = true
		result.Position = position
		result.TeamID = teamID
		break
	}

	now := s.now().UTC()
	state.UpdatedAt = now
	if result.HasNext {
		state.CurrentPosition = result.Position
		state.CurrentTeamID = result.TeamID
	} else {
		result.Completed = true
		state.Active = false
		state.EndedAt = &now
		if state.CurrentPosition < state.TotalPositions {
			state.CurrentPosition = state.TotalPositions
		}
	}
	if err := s.drafts.SaveState(ctx, state); err != nil {
		return draft.AdvanceResult{}, fmt.Errorf("save draft state: %w", err)
	}

	if result.Completed {
		s.logger.InfoContext(ctx, "draft completed", "draft_id", d.ID)
		s.events.emit(ctx, broadcast.EventDraftCompleted, map[string]any{"draftId": d.ID}, now)
	} else {
		s.events.emit(ctx, broadcast.EventDraftTurnAdvanced, map[string]any{
			"draftId":         d.ID,
			"currentPosition": result.Position,
			"currentTeamId":   result.TeamID,
			"skipped":         result.Skipped,
		}, now)
	}

	return result, nil
}

func (s *DraftService) CanStartAuction(ctx context.Context, teamID int64) (bool, error) {
	d, err := s.resolver.Active(ctx)
	if err != nil {
		return false, err
	}
	state, ok, err := s.drafts.GetState(ctx, d.ID)
	if err != nil {
		return false, fmt.Errorf("get draft state: %w", err)
	}
	return ok && state.IsTurnOf(teamID), nil
}

func (s *DraftService) State(ctx context.Context) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.State")
	defer span.End()

	d, err := s.resolver.Active(ctx)
	if err != nil {
		return DraftView{}, err
	}
	order, err := s.drafts.ListOrder(ctx, d.ID)
	if err != nil {
		return DraftView{}, fmt.Errorf("list draft order: %w", err)
	}
	state, ok, err := s.drafts.GetState(ctx, d.ID)
	if err != nil {
		return DraftView{}, fmt.Errorf("get draft state: %w", err)
	}
	if !ok {
		state = draft.State{DraftID: d.ID}
	}

	return DraftView{Draft: d, State: state, Order: order}, nil
}

func (s *DraftService) List(ctx context.Context) ([]draft.Draft, error) {
	items, err := s.drafts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return items, nil
}

func (s *DraftService) Create(ctx context.Context, input CreateDraftInput) (draft.Draft, error) {
	d := draft.Draft{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		IsActive:    input.Activate,
		CreatedAt:   s.now().UTC(),
	}
	if err := d.Validate(); err != nil {
		return draft.Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.drafts.Create(ctx, d)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("create draft: %w", err)
	}
	s.logger.InfoContext(ctx, "draft created", "draft_id", created.ID, "active", created.IsActive)
	return created, nil
}

func (s *DraftService) SetActive(ctx context.Context, draftID int64) error {
	if draftID <= 0 {
		return fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}
	drafts, err := s.drafts.List(ctx)
	if err != nil {
		return fmt.Errorf("list drafts: %w", err)
	}
	found := false
	for _, d := range drafts {
		if d.ID == draftID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: draft %d", ErrNotFound, draftID)
	}

	if err := s.drafts.SetActive(ctx, draftID); err != nil {
		return fmt.Errorf("set active draft: %w", err)
	}
	return nil
}

// Reset clears every auction, bid, squad item, order entry and the state of a
// draft and restores starting budgets.
func (s *DraftService) Reset(ctx context.Context, draftID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Reset")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if draftID <= 0 {
		d, err := s.resolver.Active(ctx)
		if err != nil {
			return err
		}
		draftID = d.ID
	}

	if err := s.drafts.Reset(ctx, draftID, s.cfg.StartingBudget); err != nil {
		return fmt.Errorf("reset draft: %w", err)
	}

	s.logger.WarnContext(ctx, "draft reset", "draft_id", draftID)
	s.events.emit(ctx, broadcast.EventDraftReset, map[string]any{"draftId": draftID}, s.now().UTC())
	return nil
}

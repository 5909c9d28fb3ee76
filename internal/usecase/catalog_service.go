package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

// CatalogSource supplies the upstream player and club catalogue.
type CatalogSource interface {
	Catalog(ctx context.Context) ([]player.Player, []club.Club, error)
}

type PlayerFilter struct {
	Position      string
	ClubID        int64
	Search        string
	AvailableOnly bool
}

// PlayerView is a player with its club name and current owner, if any.
type PlayerView struct {
	Player      player.Player
	ClubName    string
	OwnerTeamID int64
}

type ClubView struct {
	Club        club.Club
	OwnerTeamID int64
}

type CatalogSyncResult struct {
	Players int
	Clubs   int
	Skipped int
}

type CatalogService struct {
	players  player.Repository
	clubs    club.Repository
	squads   squad.Repository
	resolver *DraftResolver
	source   CatalogSource
	logger   *logging.Logger
}

func NewCatalogService(
	players player.Repository,
	clubs club.Repository,
	squads squad.Repository,
	resolver *DraftResolver,
	source CatalogSource,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{
		players:  players,
		clubs:    clubs,
		squads:   squads,
		resolver: resolver,
		source:   source,
		logger:   logger,
	}
}

func (s *CatalogService) ListPlayers(ctx context.Context, filter PlayerFilter) ([]PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPlayers")
	defer span.End()

	var position player.Position
	if v := strings.ToUpper(strings.TrimSpace(filter.Position)); v != "" {
		position = player.Position(v)
		if _, ok := player.AllPositions[position]; !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, filter.Position)
		}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	clubNames := make(map[int64]string, len(clubs))
	for _, c := range clubs {
		clubNames[c.ID] = c.Name
	}
	owners, err := s.owners(ctx, squad.KindPlayer)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		if position != "" && p.Position != position {
			continue
		}
		if filter.ClubID > 0 && p.ClubID != filter.ClubID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.WebName), search) && !strings.Contains(strings.ToLower(p.FullName), search) {
			continue
		}
		owner := owners[p.ID]
		if filter.AvailableOnly && owner > 0 {
			continue
		}
		out = append(out, PlayerView{Player: p, ClubName: clubNames[p.ClubID], OwnerTeamID: owner})
	}
	return out, nil
}

func (s *CatalogService) ListClubs(ctx context.Context) ([]ClubView, error) {
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	owners, err := s.owners(ctx, squad.KindClub)
	if err != nil {
		return nil, err
	}

	out := make([]ClubView, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, ClubView{Club: c, OwnerTeamID: owners[c.ID]})
	}
	return out, nil
}

// Sync upserts the upstream catalogue. Invalid rows are skipped and counted.
func (s *CatalogService) Sync(ctx context.Context) (CatalogSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Sync")
	defer span.End()

	if s.source == nil {
		return CatalogSyncResult{}, fmt.Errorf("%w: catalog source is not configured", ErrDependencyUnavailable)
	}
	players, clubs, err := s.source.Catalog(ctx)
	if err != nil {
		return CatalogSyncResult{}, fmt.Errorf("%w: fetch catalog: %v", ErrDependencyUnavailable, err)
	}

	var result CatalogSyncResult
	validClubs := make([]club.Club, 0, len(clubs))
	for _, c := range clubs {
		if err := c.Validate(); err != nil {
			result.Skipped++
			continue
		}
		validClubs = append(validClubs, c)
	}
	validPlayers := make([]player.Player, 0, len(players))
	for _, p := range players {
		if err := p.Validate(); err != nil {
			result.Skipped++
			continue
		}
		validPlayers = append(validPlayers, p)
	}
	sort.Slice(validPlayers, func(i, j int) bool { return validPlayers[i].ID < validPlayers[j].ID })

	if err := s.clubs.UpsertMany(ctx, validClubs); err != nil {
		return CatalogSyncResult{}, fmt.Errorf("upsert clubs: %w", err)
	}
	if err := s.players.UpsertMany(ctx, validPlayers); err != nil {
		return CatalogSyncResult{}, fmt.Errorf("upsert players: %w", err)
	}

	result.Players = len(validPlayers)
	result.Clubs = len(validClubs)
	s.logger.InfoContext(ctx, "catalog synced", "players", result.Players, "clubs", result.Clubs, "skipped", result.Skipped)
	return result, nil
}

func (s *CatalogService) owners(ctx context.Context, kind squad.Kind) (map[int64]int64, error) {
	d, err := s.resolver.Active(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.squads.ListByDraft(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("list squad items: %w", err)
	}
	out := make(map[int64]int64, len(items))
	for _, item := range items {
		if item.Kind == kind {
			out[item.SubjectID] = item.TeamID
		}
	}
	return out, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
)

type SquadPlayer struct {
	Player    player.Player
	ClubName  string
	PricePaid int64
}

type SquadClub struct {
	Club      club.Club
	PricePaid int64
}

// SquadView is a team's squad in the active draft.
type SquadView struct {
	Team           team.Team
	Players        []SquadPlayer
	Clubs          []SquadClub
	TotalSpent     int64
	SlotsRemaining int
	MaxAllowedBid  int64
}

type TeamService struct {
	teams    team.Repository
	squads   squad.Repository
	players  player.Repository
	clubs    club.Repository
	resolver *DraftResolver
}

func NewTeamService(teams team.Repository, squads squad.Repository, players player.Repository, clubs club.Repository, resolver *DraftResolver) *TeamService {
	return &TeamService{
		teams:    teams,
		squads:   squads,
		players:  players,
		clubs:    clubs,
		resolver: resolver,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	items, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID int64) (team.Team, error) {
	t, ok, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}
	return t, nil
}

// ResolveByUser maps an authenticated account to its team.
func (s *TeamService) ResolveByUser(ctx context.Context, userID string) (team.Team, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	t, ok, err := s.teams.GetByUserID(ctx, userID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by user: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: no team for user %s", ErrForbidden, userID)
	}
	return t, nil
}

func (s *TeamService) Squad(ctx context.Context, teamID int64) (SquadView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Squad")
	defer span.End()

	t, err := s.Get(ctx, teamID)
	if err != nil {
		return SquadView{}, err
	}
	d, err := s.resolver.Active(ctx)
	if err != nil {
		return SquadView{}, err
	}
	items, err := s.squads.ListByTeam(ctx, d.ID, teamID)
	if err != nil {
		return SquadView{}, fmt.Errorf("list squad items: %w", err)
	}
	clubs, err := s.clubIndex(ctx)
	if err != nil {
		return SquadView{}, err
	}
	return s.buildView(ctx, t, items, clubs)
}

// AllSquads returns every team's squad in team order.
func (s *TeamService) AllSquads(ctx context.Context) ([]SquadView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AllSquads")
	defer span.End()

	teams, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.resolver.Active(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.squads.ListByDraft(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("list squad items: %w", err)
	}
	clubs, err := s.clubIndex(ctx)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[int64][]squad.Item, len(teams))
	for _, item := range items {
		byTeam[item.TeamID] = append(byTeam[item.TeamID], item)
	}

	out := make([]SquadView, 0, len(teams))
	for _, t := range teams {
		view, err := s.buildView(ctx, t, byTeam[t.ID], clubs)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *TeamService) buildView(ctx context.Context, t team.Team, items []squad.Item, clubs map[int64]club.Club) (SquadView, error) {
	view := SquadView{Team: t, Players: []SquadPlayer{}, Clubs: []SquadClub{}}

	prices := make(map[int64]int64, len(items))
	playerIDs := make([]int64, 0, len(items))
	for _, item := range items {
		view.TotalSpent += item.PricePaid
		switch item.Kind {
		case squad.KindPlayer:
			prices[item.SubjectID] = item.PricePaid
			playerIDs = append(playerIDs, item.SubjectID)
		case squad.KindClub:
			view.Clubs = append(view.Clubs, SquadClub{
				Club:      clubOrPlaceholder(clubs, item.SubjectID),
				PricePaid: item.PricePaid,
			})
		}
	}

	if len(playerIDs) > 0 {
		players, err := s.players.GetByIDs(ctx, playerIDs)
		if err != nil {
			return SquadView{}, fmt.Errorf("get squad players: %w", err)
		}
		for _, p := range players {
			view.Players = append(view.Players, SquadPlayer{
				Player:    p,
				ClubName:  clubs[p.ClubID].Name,
				PricePaid: prices[p.ID],
			})
		}
	}

	view.SlotsRemaining = max(squad.TotalSlots-len(items), 0)
	view.MaxAllowedBid = squad.MaxAllowedBid(t.Budget, len(items), squad.TotalSlots)
	return view, nil
}

func (s *TeamService) clubIndex(ctx context.Context) (map[int64]club.Club, error) {
	items, err := s.clubs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	out := make(map[int64]club.Club, len(items))
	for _, c := range items {
		out[c.ID] = c
	}
	return out, nil
}

func clubOrPlaceholder(clubs map[int64]club.Club, clubID int64) club.Club {
	if c, ok := clubs[clubID]; ok {
		return c
	}
	return club.Club{ID: clubID, Name: fmt.Sprintf("Club %d", clubID)}
}

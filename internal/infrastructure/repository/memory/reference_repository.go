package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
)

type TeamRepository struct {
	s *Store
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]team.Team, 0, len(r.s.teamOrder))
	for _, id := range r.s.teamOrder {
		out = append(out, r.s.teams[id])
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetByUserID(_ context.Context, userID string) (team.Team, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.teamOrder {
		if t := r.s.teams[id]; t.UserID == userID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

type PlayerRepository struct {
	s *Store
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]player.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []int64) ([]player.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.s.players[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) UpsertMany(_ context.Context, players []player.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range players {
		r.s.players[p.ID] = p
	}
	return nil
}

type ClubRepository struct {
	s *Store
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]club.Club, 0, len(r.s.clubs))
	for _, c := range r.s.clubs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID int64) (club.Club, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clubs[clubID]
	return c, ok, nil
}

func (r *ClubRepository) UpsertMany(_ context.Context, clubs []club.Club) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range clubs {
		r.s.clubs[c.ID] = c
	}
	return nil
}

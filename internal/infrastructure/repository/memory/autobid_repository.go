package memory

import (
	"context"

	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
)

type AutoBidRepository struct {
	s *Store
}

func (r *AutoBidRepository) List(_ context.Context) ([]autobid.Config, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]autobid.Config, 0, len(r.s.autobidOrder))
	for _, teamID := range r.s.autobidOrder {
		out = append(out, cloneAutoBid(r.s.autobids[teamID]))
	}
	return out, nil
}

func (r *AutoBidRepository) GetByTeam(_ context.Context, teamID int64) (autobid.Config, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cfg, ok := r.s.autobids[teamID]
	return cloneAutoBid(cfg), ok, nil
}

// Upsert keeps the position of an existing configuration in List.
func (r *AutoBidRepository) Upsert(_ context.Context, cfg autobid.Config) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.autobids[cfg.TeamID]; ok {
		cfg.CreatedAt = existing.CreatedAt
	} else {
		r.s.autobidOrder = append(r.s.autobidOrder, cfg.TeamID)
	}
	r.s.autobids[cfg.TeamID] = cloneAutoBid(cfg)
	return nil
}

func cloneAutoBid(cfg autobid.Config) autobid.Config {
	cfg.Instructions = append([]autobid.Instruction(nil), cfg.Instructions...)
	return cfg
}

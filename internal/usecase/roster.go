package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/platform/resilience"
)

const defaultDraftName = "Default Draft"

// DraftResolver returns the active draft, creating a default one on first use.
type DraftResolver struct {
	drafts draft.Repository
	flight resilience.SingleFlight
	now    func() time.Time
}

func NewDraftResolver(drafts draft.Repository) *DraftResolver {
	return &DraftResolver{drafts: drafts, now: time.Now}
}

func (r *DraftResolver) Active(ctx context.Context) (draft.Draft, error) {
	d, ok, err := r.drafts.GetActive(ctx)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("get active draft: %w", err)
	}
	if ok {
		return d, nil
	}

	v, err, _ := r.flight.Do("active-draft", func() (any, error) {
		if d, ok, err := r.drafts.GetActive(ctx); err != nil || ok {
			return d, err
		}
		return r.drafts.Create(ctx, draft.Draft{
			Name:        defaultDraftName,
			Description: "Created automatically",
			IsActive:    true,
			CreatedAt:   r.now().UTC(),
		})
	})
	if err != nil {
		return draft.Draft{}, fmt.Errorf("create default draft: %w", err)
	}
	return v.(draft.Draft), nil
}

type rosterLoader struct {
	squads  squad.Repository
	players player.Repository
}

// load resolves a team's squad items into a Roster with player metadata.
func (l rosterLoader) load(ctx context.Context, draftID, teamID int64) (squad.Roster, []squad.Item, error) {
	items, err := l.squads.ListByTeam(ctx, draftID, teamID)
	if err != nil {
		return squad.Roster{}, nil, fmt.Errorf("list squad items: %w", err)
	}

	roster := squad.Roster{}
	playerIDs := make([]int64, 0, len(items))
	for _, item := range items {
		switch item.Kind {
		case squad.KindPlayer:
			playerIDs = append(playerIDs, item.SubjectID)
		case squad.KindClub:
			roster.ClubIDs = append(roster.ClubIDs, item.SubjectID)
		}
	}

	if len(playerIDs) > 0 {
		players, err := l.players.GetByIDs(ctx, playerIDs)
		if err != nil {
			return squad.Roster{}, nil, fmt.Errorf("get squad players: %w", err)
		}
		if len(players) != len(playerIDs) {
			return squad.Roster{}, nil, fmt.Errorf("%w: squad of team %d references unknown players", ErrNotFound, teamID)
		}
		roster.Players = players
	}

	return roster, items, nil
}

// squadCounts counts players and clubs per team without resolving metadata.
func squadCounts(items []squad.Item) map[int64]squad.Roster {
	out := make(map[int64]squad.Roster)
	for _, item := range items {
		r := out[item.TeamID]
		switch item.Kind {
		case squad.KindPlayer:
			r.Players = append(r.Players, player.Player{ID: item.SubjectID})
		case squad.KindClub:
			r.ClubIDs = append(r.ClubIDs, item.SubjectID)
		}
		out[item.TeamID] = r
	}
	return out
}

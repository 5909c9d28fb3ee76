package fpl

import (
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type bootstrapPayload struct {
	Events   []eventPayload   `json:"events"`
	Teams    []teamPayload    `json:"teams"`
	Elements []elementPayload `json:"elements"`
}

type eventPayload struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	IsCurrent    bool   `json:"is_current"`
	IsNext       bool   `json:"is_next"`
	Finished     bool   `json:"finished"`
}

type teamPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type elementPayload struct {
	ID          int64  `json:"id"`
	WebName     string `json:"web_name"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	ElementType int    `json:"element_type"`
	Team        int64  `json:"team"`
	NowCost     int64  `json:"now_cost"`
	Status      string `json:"status"`
}

type fixturePayload struct {
	ID    int64 `json:"id"`
	Event int   `json:"event"`
}

type livePayload struct {
	Elements []liveElementPayload `json:"elements"`
}

type liveElementPayload struct {
	ID    int64 `json:"id"`
	Stats struct {
		Minutes     int   `json:"minutes"`
		GoalsScored int   `json:"goals_scored"`
		Assists     int   `json:"assists"`
		CleanSheets int   `json:"clean_sheets"`
		Bonus       int   `json:"bonus"`
		TotalPoints int64 `json:"total_points"`
	} `json:"stats"`
}

func (p bootstrapPayload) toDomain(logger *logging.Logger) Bootstrap {
	out := Bootstrap{
		Events:  make([]gameweek.Info, 0, len(p.Events)),
		Players: make([]player.Player, 0, len(p.Elements)),
		Clubs:   make([]club.Club, 0, len(p.Teams)),
	}

	for _, e := range p.Events {
		info := gameweek.DefaultInfo(e.ID)
		info.Name = e.Name
		info.IsCurrent = e.IsCurrent
		info.IsNext = e.IsNext
		info.Finished = e.Finished
		if deadline, err := time.Parse(time.RFC3339, e.DeadlineTime); err == nil {
			info.Deadline = deadline.UTC()
		}
		out.Events = append(out.Events, info)
	}

	for _, t := range p.Teams {
		out.Clubs = append(out.Clubs, club.Club{ID: t.ID, Name: t.Name, ShortName: t.ShortName})
	}

	skipped := 0
	for _, el := range p.Elements {
		position, ok := player.PositionFromElementType(el.ElementType)
		if !ok {
			skipped++
			continue
		}
		out.Players = append(out.Players, player.Player{
			ID:       el.ID,
			WebName:  el.WebName,
			FullName: strings.TrimSpace(el.FirstName + " " + el.SecondName),
			Position: position,
			ClubID:   el.Team,
			Price:    el.NowCost,
			Status:   el.Status,
		})
	}
	if skipped > 0 {
		logger.Warn("skipped bootstrap elements with unknown element type", "count", skipped)
	}

	return out
}

package httpapi

import (
	"net/http"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	gw, err := queryInt(r, "gameweek", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scoring.Leaderboard(ctx, int(gw))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowDTO{
			Rank:        row.Rank,
			TeamID:      row.TeamID,
			TeamName:    row.TeamName,
			Gameweek:    row.Gameweek,
			Points:      row.Points,
			Chip:        row.Chip,
			Gameweeks:   row.Gameweeks,
			CaptainID:   row.CaptainID,
			Substituted: row.Substituted,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamHistory")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scoring.TeamHistory(ctx, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]historyRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, historyRowDTO{
			pointsDTO:        pointsToDTO(row.GameweekPoints),
			CumulativePoints: row.CumulativePoints,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPointsBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPointsBreakdown")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoring.Breakdown(ctx, teamID, gw)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, breakdownToDTO(teamID, gw, result))
}

func (h *Handler) CalculateTeamPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateTeamPoints")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	points, err := h.scoring.CalculateTeamPoints(ctx, teamID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "calculate team points failed", "team_id", teamID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, pointsToDTO(points))
}

func (h *Handler) CalculateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateGameweek")
	defer span.End()

	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoring.CalculateGameweek(ctx, gw)
	if err != nil {
		h.logger.ErrorContext(ctx, "calculate gameweek failed", "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}

	points := make([]pointsDTO, 0, len(result.Points))
	for _, p := range result.Points {
		points = append(points, pointsToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, calculateGameweekDTO{
		Gameweek:   result.Gameweek,
		Calculated: result.Calculated,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
		Points:     points,
	})
}

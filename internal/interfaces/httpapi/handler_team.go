package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.teams.Squad(ctx, t.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, squadToDTO(view))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teams.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSquad")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.teams.Squad(ctx, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, squadToDTO(view))
}

func (h *Handler) ListSquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSquads")
	defer span.End()

	views, err := h.teams.AllSquads(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]squadDTO, 0, len(views))
	for _, v := range views {
		items = append(items, squadToDTO(v))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	clubID, err := queryInt(r, "club_id", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	available, err := queryBool(r, "available")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	players, err := h.catalog.ListPlayers(ctx, usecase.PlayerFilter{
		Position:      query.Get("position"),
		ClubID:        clubID,
		Search:        query.Get("search"),
		AvailableOnly: available,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		dto := playerToDTO(p.Player)
		dto.ClubName = p.ClubName
		dto.OwnerTeamID = p.OwnerTeamID
		items = append(items, dto)
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.catalog.ListClubs(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		dto := clubToDTO(c.Club)
		dto.OwnerTeamID = c.OwnerTeamID
		items = append(items, dto)
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncCatalog")
	defer span.End()

	result, err := h.catalog.Sync(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "catalog sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.gameweeks.Refresh(ctx)

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"players": result.Players,
		"clubs":   result.Clubs,
		"skipped": result.Skipped,
	})
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

type submitLineupRequest struct {
	Starting         []int64 `json:"starting" validate:"required,len=11,dive,gt=0"`
	Bench            []int64 `json:"bench" validate:"required,len=4,dive,gt=0"`
	CaptainID        int64   `json:"captainId" validate:"required,gt=0"`
	ViceCaptainID    int64   `json:"viceCaptainId" validate:"required,gt=0,nefield=CaptainID"`
	ClubMultiplierID int64   `json:"clubMultiplierId" validate:"omitempty,gt=0"`
	Chip             string  `json:"chip" validate:"omitempty,max=32"`
}

type swapPlayersRequest struct {
	OutID int64 `json:"outId" validate:"required,gt=0"`
	InID  int64 `json:"inId" validate:"required,gt=0,nefield=OutID"`
}

func (h *Handler) GetCurrentGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentGameweek")
	defer span.End()

	info, err := h.gameweeks.Current(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current gameweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(info))
}

func (h *Handler) GetGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweek")
	defer span.End()

	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	info, err := h.gameweeks.Info(ctx, gw)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(info))
}

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitLineup")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sub, err := h.submissions.Submit(ctx, usecase.SubmitInput{
		TeamID:           t.ID,
		Gameweek:         gw,
		Starting:         req.Starting,
		Bench:            req.Bench,
		CaptainID:        req.CaptainID,
		ViceCaptainID:    req.ViceCaptainID,
		ClubMultiplierID: req.ClubMultiplierID,
		Chip:             req.Chip,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit lineup failed", "team_id", t.ID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, submissionToDTO(sub))
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSubmission")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sub, ok, err := h.submissions.Get(ctx, t.ID, gw)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, map[string]any{"teamId": t.ID, "gameweek": gw, "submitted": false})
		return
	}
	writeSuccess(ctx, w, http.StatusOK, submissionToDTO(sub))
}

func (h *Handler) GetSubmissionHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSubmissionHistory")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.submissions.History(ctx, t.ID, gw)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]submissionHistoryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, submissionHistoryDTO{ID: e.ID, submissionDTO: submissionToDTO(e.Submission)})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SwapPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapPlayers")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req swapPlayersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sub, err := h.submissions.SwapPlayers(ctx, usecase.SwapPlayersInput{
		TeamID:   t.ID,
		Gameweek: gw,
		OutID:    req.OutID,
		InID:     req.InID,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, submissionToDTO(sub))
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSubmissions")
	defer span.End()

	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	subs, err := h.submissions.ListByGameweek(ctx, gw)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]submissionDTO, 0, len(subs))
	for _, s := range subs {
		items = append(items, submissionToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetChipStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChipStatus")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.chips.Status(ctx, t.ID, gw)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, chipStatusToDTO(status))
}

func (h *Handler) FinalizeChips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeChips")
	defer span.End()

	gw, err := pathGameweek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.chips.FinalizeChips(ctx, gw)
	if err != nil {
		h.logger.ErrorContext(ctx, "finalize chips failed", "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"gameweek": result.Gameweek,
		"recorded": result.Recorded,
		"existing": result.Existing,
	})
}

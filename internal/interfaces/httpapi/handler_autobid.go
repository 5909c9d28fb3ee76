package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

type saveAutoBidRequest struct {
	Enabled      bool             `json:"enabled"`
	Instructions []instructionDTO `json:"instructions" validate:"max=200,dive"`
}

func (h *Handler) GetAutoBidConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAutoBidConfig")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.autobids.GetConfig(ctx, t.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, autoBidToDTO(view))
}

func (h *Handler) SaveAutoBidConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveAutoBidConfig")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveAutoBidRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.autobids.SaveConfig(ctx, usecase.SaveAutoBidInput{
		TeamID:       t.ID,
		Enabled:      req.Enabled,
		Instructions: instructionsToDomain(req.Instructions),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save auto-bid config failed", "team_id", t.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, autoBidToDTO(view))
}

func (h *Handler) GetAutoBidStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAutoBidStatus")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.autobids.Status(ctx, t.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, autoBidStatusDTO{
		TeamID:           status.TeamID,
		Enabled:          status.Enabled,
		InstructionCount: status.InstructionCount,
		Budget:           status.Budget,
		SquadSize:        status.SquadSize,
		MaxAllowedBid:    status.MaxAllowedBid,
		Running:          status.Running,
		OnBreak:          status.OnBreak,
	})
}

func (h *Handler) GetMaxAllowedBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMaxAllowedBid")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	maxBid, err := h.autobids.MaxAllowedBid(ctx, t.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"teamId": t.ID, "maxAllowedBid": maxBid})
}

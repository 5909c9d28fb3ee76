package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

type createDraftRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Activate    bool   `json:"activate"`
}

func (h *Handler) GetDraftState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftState")
	defer span.End()

	view, err := h.drafts.State(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft state failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftViewToDTO(view))
}

func (h *Handler) InitializeDraftOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitializeDraftOrder")
	defer span.End()

	order, err := h.drafts.InitializeOrder(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "initialize draft order failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, orderToDTO(order))
}

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft")
	defer span.End()

	if _, err := h.drafts.Start(ctx); err != nil {
		h.logger.WarnContext(ctx, "start draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.drafts.State(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, draftViewToDTO(view))
}

func (h *Handler) AdvanceDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceDraft")
	defer span.End()

	result, err := h.drafts.Advance(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "advance draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, advanceToDTO(result))
}

func (h *Handler) CanStartAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CanStartAuction")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ok, err := h.drafts.CanStartAuction(ctx, t.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"teamId": t.ID, "canStart": ok})
}

func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrafts")
	defer span.End()

	drafts, err := h.drafts.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]draftDTO, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, draftToDTO(d))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraft")
	defer span.End()

	var req createDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.drafts.Create(ctx, usecase.CreateDraftInput{
		Name:        req.Name,
		Description: req.Description,
		Activate:    req.Activate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create draft failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftToDTO(created))
}

func (h *Handler) ActivateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateDraft")
	defer span.End()

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.drafts.SetActive(ctx, draftID); err != nil {
		h.logger.WarnContext(ctx, "activate draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"draftId": draftID, "isActive": true})
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDraft")
	defer span.End()

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.drafts.Reset(ctx, draftID); err != nil {
		h.logger.ErrorContext(ctx, "reset draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"draftId": draftID, "reset": true})
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

type startAuctionRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=player club"`
	SubjectID int64  `json:"subjectId" validate:"required,gt=0"`
}

type placeBidRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type sellingStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=selling1 selling2"`
}

type resolveWaitRequest struct {
	Accept bool `json:"accept"`
}

func (h *Handler) GetActiveAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveAuction")
	defer span.End()

	view, ok, err := h.auctions.Active(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get active auction failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, map[string]any{"active": false})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionViewToDTO(view))
}

func (h *Handler) ListCompletedAuctions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompletedAuctions")
	defer span.End()

	items, err := h.auctions.ListCompleted(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]auctionDTO, 0, len(items))
	for _, a := range items {
		out = append(out, auctionToDTO(a))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListBids(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBids")
	defer span.End()

	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bids, err := h.auctions.ListBids(ctx, auctionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, bidsToDTO(bids))
}

func (h *Handler) StartAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartAuction")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req startAuctionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.auctions.StartAuction(ctx, usecase.StartAuctionInput{
		TeamID:    t.ID,
		Kind:      squad.Kind(req.Kind),
		SubjectID: req.SubjectID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start auction failed", "team_id", t.ID, "kind", req.Kind, "subject_id", req.SubjectID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, auctionViewToDTO(view))
}

func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBid")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req placeBidRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.auctions.PlaceBid(ctx, usecase.PlaceBidInput{
		AuctionID: auctionID,
		TeamID:    t.ID,
		Amount:    req.Amount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bid failed", "auction_id", auctionID, "team_id", t.ID, "amount", req.Amount, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(updated))
}

func (h *Handler) CompleteAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteAuction")
	defer span.End()

	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.auctions.CompleteAuction(ctx, auctionID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete auction failed", "auction_id", auctionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, completeAuctionDTO{
		Auction:   auctionToDTO(result.Auction),
		TeamID:    result.Item.TeamID,
		PricePaid: result.Item.PricePaid,
		Draft:     advanceToDTO(result.Draft),
	})
}

func (h *Handler) RestartAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RestartAuction")
	defer span.End()

	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	restarted, err := h.auctions.RestartAuction(ctx, auctionID)
	if err != nil {
		h.logger.WarnContext(ctx, "restart auction failed", "auction_id", auctionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(restarted))
}

func (h *Handler) CancelLastBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelLastBid")
	defer span.End()

	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.auctions.CancelLastBid(ctx, auctionID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel last bid failed", "auction_id", auctionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(updated))
}

func (h *Handler) SetSellingStage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSellingStage")
	defer span.End()

	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sellingStageRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.auctions.SetSellingStage(ctx, auctionID, req.Stage)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(updated))
}

func (h *Handler) RequestWait(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestWait")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.auctions.RequestWait(ctx, auctionID, t.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(updated))
}

func (h *Handler) ResolveWait(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveWait")
	defer span.End()

	auctionID, err := pathID(r, "auctionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req resolveWaitRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.auctions.ResolveWait(ctx, auctionID, req.Accept)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(updated))
}

func (h *Handler) GetBreakStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBreakStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, breakToDTO(h.breaks.Status(ctx)))
}

func (h *Handler) ToggleBreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleBreak")
	defer span.End()

	t, err := currentTeam(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, breakToDTO(h.breaks.Toggle(ctx, t.ID)))
}

func (h *Handler) EndBreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndBreak")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, breakToDTO(h.breaks.End(ctx)))
}

package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fantasy-auction"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

type errorRule struct {
	target error
	mapped mappedError
}

// errorRules is checked in order; domain sentinels come before the generic
// usecase errors they may be wrapped alongside.
var errorRules = []errorRule{
	{auction.ErrNotYourTurn, mappedError{http.StatusForbidden, "notYourTurn", "PERMISSION_DENIED"}},
	{auction.ErrAuctionInProgress, mappedError{http.StatusConflict, "auctionInProgress", "ALREADY_EXISTS"}},
	{auction.ErrAlreadyOwned, mappedError{http.StatusConflict, "alreadyOwned", "ALREADY_EXISTS"}},
	{auction.ErrInvalidAmount, mappedError{http.StatusBadRequest, "invalidAmount", "INVALID_ARGUMENT"}},
	{auction.ErrAuctionNotActive, mappedError{http.StatusConflict, "auctionNotActive", "FAILED_PRECONDITION"}},
	{auction.ErrInsufficientBudget, mappedError{http.StatusUnprocessableEntity, "insufficientBudget", "FAILED_PRECONDITION"}},
	{auction.ErrNoBids, mappedError{http.StatusConflict, "noBids", "FAILED_PRECONDITION"}},
	{auction.ErrNotCompleted, mappedError{http.StatusConflict, "auctionNotCompleted", "FAILED_PRECONDITION"}},
	{auction.ErrInvalidStage, mappedError{http.StatusBadRequest, "invalidSellingStage", "INVALID_ARGUMENT"}},
	{auction.ErrStaleAuction, mappedError{http.StatusConflict, "staleAuction", "ABORTED"}},
	{auction.ErrNotFound, mappedError{http.StatusNotFound, "auctionNotFound", "NOT_FOUND"}},

	{squad.ErrSlotLimitExceeded, mappedError{http.StatusUnprocessableEntity, "slotLimitExceeded", "FAILED_PRECONDITION"}},
	{squad.ErrPositionLimitExceeded, mappedError{http.StatusUnprocessableEntity, "positionLimitExceeded", "FAILED_PRECONDITION"}},
	{squad.ErrClubLimitExceeded, mappedError{http.StatusUnprocessableEntity, "clubLimitExceeded", "FAILED_PRECONDITION"}},

	{draft.ErrNoTeams, mappedError{http.StatusConflict, "noTeams", "FAILED_PRECONDITION"}},
	{draft.ErrOrderExists, mappedError{http.StatusConflict, "draftOrderExists", "ALREADY_EXISTS"}},
	{draft.ErrOrderEmpty, mappedError{http.StatusConflict, "draftOrderEmpty", "FAILED_PRECONDITION"}},
	{draft.ErrAlreadyActive, mappedError{http.StatusConflict, "draftAlreadyActive", "FAILED_PRECONDITION"}},
	{draft.ErrNotActive, mappedError{http.StatusConflict, "draftNotActive", "FAILED_PRECONDITION"}},
	{draft.ErrInvalidRounds, mappedError{http.StatusBadRequest, "invalidDraftRounds", "INVALID_ARGUMENT"}},

	{lineup.ErrInvalidFormation, mappedError{http.StatusUnprocessableEntity, "invalidFormation", "INVALID_ARGUMENT"}},
	{lineup.ErrInvalidSwap, mappedError{http.StatusBadRequest, "invalidSwap", "INVALID_ARGUMENT"}},
	{chip.ErrInvalidChipUsage, mappedError{http.StatusUnprocessableEntity, "invalidChipUsage", "FAILED_PRECONDITION"}},
	{gameweek.ErrDeadlinePassed, mappedError{http.StatusConflict, "deadlinePassed", "FAILED_PRECONDITION"}},
	{gameweek.ErrInvalidSubmission, mappedError{http.StatusBadRequest, "invalidSubmission", "INVALID_ARGUMENT"}},
	{autobid.ErrInvalidInstruction, mappedError{http.StatusBadRequest, "invalidInstruction", "INVALID_ARGUMENT"}},

	{usecase.ErrOnBreak, mappedError{http.StatusLocked, "onBreak", "FAILED_PRECONDITION"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError maps err onto the envelope and marks the active span. 5xx
// messages are replaced so internals never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, mapped.Reason)
	}
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeErrorBody(w, mapped, message)
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeErrorBody(w, internalErrorMapping, "internal server error")
}

func writeErrorBody(w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

var internalErrorMapping = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return internalErrorMapping
}

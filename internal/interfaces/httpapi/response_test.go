package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_HidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != "internal server error" {
		t.Fatalf("expected generic message, got %+v", body.Error)
	}
}

func TestMapError_DomainSentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
		reason string
	}{
		{auction.ErrNotYourTurn, http.StatusForbidden, "notYourTurn"},
		{auction.ErrAuctionInProgress, http.StatusConflict, "auctionInProgress"},
		{auction.ErrAlreadyOwned, http.StatusConflict, "alreadyOwned"},
		{auction.ErrInvalidAmount, http.StatusBadRequest, "invalidAmount"},
		{auction.ErrAuctionNotActive, http.StatusConflict, "auctionNotActive"},
		{auction.ErrInsufficientBudget, http.StatusUnprocessableEntity, "insufficientBudget"},
		{auction.ErrNoBids, http.StatusConflict, "noBids"},
		{squad.ErrSlotLimitExceeded, http.StatusUnprocessableEntity, "slotLimitExceeded"},
		{squad.ErrPositionLimitExceeded, http.StatusUnprocessableEntity, "positionLimitExceeded"},
		{squad.ErrClubLimitExceeded, http.StatusUnprocessableEntity, "clubLimitExceeded"},
		{lineup.ErrInvalidFormation, http.StatusUnprocessableEntity, "invalidFormation"},
		{chip.ErrInvalidChipUsage, http.StatusUnprocessableEntity, "invalidChipUsage"},
		{gameweek.ErrDeadlinePassed, http.StatusConflict, "deadlinePassed"},
		{usecase.ErrOnBreak, http.StatusLocked, "onBreak"},
		{usecase.ErrForbidden, http.StatusForbidden, "forbidden"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			got := mapError(fmt.Errorf("apply bid: %w", tt.err))
			if got.HTTPStatus != tt.status || got.Reason != tt.reason {
				t.Fatalf("mapError(%v) = %d/%s, want %d/%s", tt.err, got.HTTPStatus, got.Reason, tt.status, tt.reason)
			}
		})
	}
}

func TestMapError_ReasonsAreDistinct(t *testing.T) {
	seen := make(map[string]error, len(errorRules))
	for _, rule := range errorRules {
		if prev, ok := seen[rule.mapped.Reason]; ok {
			t.Fatalf("reason %q shared by %v and %v", rule.mapped.Reason, prev, rule.target)
		}
		seen[rule.mapped.Reason] = rule.target
	}
}

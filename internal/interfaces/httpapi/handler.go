package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Services are the use cases the HTTP surface exposes.
type Services struct {
	Drafts      *usecase.DraftService
	Auctions    *usecase.AuctionService
	AutoBids    *usecase.AutoBidEngine
	Breaks      *usecase.BreakService
	Teams       *usecase.TeamService
	Catalog     *usecase.CatalogService
	Gameweeks   *usecase.GameweekService
	Submissions *usecase.SubmissionService
	Chips       *usecase.ChipService
	Scoring     *usecase.ScoringService
}

type Handler struct {
	drafts      *usecase.DraftService
	auctions    *usecase.AuctionService
	autobids    *usecase.AutoBidEngine
	breaks      *usecase.BreakService
	teams       *usecase.TeamService
	catalog     *usecase.CatalogService
	gameweeks   *usecase.GameweekService
	submissions *usecase.SubmissionService
	chips       *usecase.ChipService
	scoring     *usecase.ScoringService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		drafts:      services.Drafts,
		auctions:    services.Auctions,
		autobids:    services.AutoBids,
		breaks:      services.Breaks,
		teams:       services.Teams,
		catalog:     services.Catalog,
		gameweeks:   services.Gameweeks,
		submissions: services.Submissions,
		chips:       services.Chips,
		scoring:     services.Scoring,
		logger:      logger.Named("httpapi"),
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body into payload and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func currentTeam(ctx context.Context) (team.Team, error) {
	t, ok := teamFromContext(ctx)
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team is missing from request context", usecase.ErrUnauthorized)
	}
	return t, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

func pathGameweek(r *http.Request) (int, error) {
	id, err := pathID(r, "gameweek")
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func queryInt(r *http.Request, name string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

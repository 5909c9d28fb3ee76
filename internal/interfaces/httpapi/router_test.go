package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/user"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/broadcast"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

var userByTeam = map[int64]string{1: "user-admin", 2: "user-kop", 3: "user-cityzen", 4: "user-villan"}

// tokenIsUser accepts any non-empty bearer token and treats it as the user id.
type tokenIsUser struct{}

func (tokenIsUser) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if token == "" || token == "expired" {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: token}, nil
}

type emptyCalendar struct{}

func (emptyCalendar) Events(context.Context) ([]gameweek.Info, error) { return nil, nil }
func (emptyCalendar) FixtureCount(context.Context, int) (int, error)  { return 10, nil }

type noStats struct{}

func (noStats) LiveStats(context.Context, int) (map[int64]gameweek.PlayerStats, error) {
	return map[int64]gameweek.PlayerStats{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore(memory.DefaultSeed())
	logger := logging.NewNop()
	rules := squad.DefaultRules()
	publisher := broadcast.NopPublisher{}

	resolver := usecase.NewDraftResolver(store.Drafts())
	drafts := usecase.NewDraftService(store.Drafts(), store.Teams(), store.Squads(), resolver, rules, usecase.DraftConfig{}, publisher, nil, logger)
	breaks := usecase.NewBreakService(publisher, nil, logger)
	auctions := usecase.NewAuctionService(store.Auctions(), store.Teams(), store.Players(), store.Clubs(), store.Squads(), drafts, resolver, breaks, rules, publisher, nil, logger)
	autobids := usecase.NewAutoBidEngine(store.AutoBids(), store.Auctions(), store.Teams(), store.Players(), store.Squads(), auctions, breaks, rules, nil, nil, usecase.AutoBidConfig{}, logger)
	teams := usecase.NewTeamService(store.Teams(), store.Squads(), store.Players(), store.Clubs(), resolver)
	gameweeks := usecase.NewGameweekService(emptyCalendar{}, noStats{}, nil, nil, logger)

	handler := NewHandler(Services{
		Drafts:      drafts,
		Auctions:    auctions,
		AutoBids:    autobids,
		Breaks:      breaks,
		Teams:       teams,
		Catalog:     usecase.NewCatalogService(store.Players(), store.Clubs(), store.Squads(), resolver, nil, logger),
		Gameweeks:   gameweeks,
		Submissions: usecase.NewSubmissionService(store.Submissions(), store.Chips(), store.Squads(), store.Players(), resolver, gameweeks, logger),
		Chips:       usecase.NewChipService(store.Chips(), store.Submissions(), gameweeks, logger),
		Scoring:     usecase.NewScoringService(store.Submissions(), store.Points(), store.Players(), store.Teams(), gameweeks, publisher, nil, 2, logger),
	}, logger)

	return NewRouter(handler, RouterConfig{
		Verifier: tokenIsUser{},
		Teams:    teams,
		Logger:   logger,
	})
}

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func call(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return out
}

func requireReason(t *testing.T, rec *httptest.ResponseRecorder, status int, reason string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	env := decodeEnvelope[any](t, rec)
	if env.Error == nil || len(env.Error.Errors) == 0 {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	if got := env.Error.Errors[0].Reason; got != reason {
		t.Fatalf("expected reason %q, got %q", reason, got)
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := call(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_AuthAndAdminGuards(t *testing.T) {
	router := newTestRouter(t)

	requireReason(t, call(t, router, http.MethodPost, "/v1/auctions", "", `{}`), http.StatusUnauthorized, "unauthorized")
	requireReason(t, call(t, router, http.MethodPost, "/v1/auctions", "expired", `{}`), http.StatusUnauthorized, "unauthorized")
	requireReason(t, call(t, router, http.MethodGet, "/v1/me", "user-unknown", ""), http.StatusForbidden, "forbidden")
	requireReason(t, call(t, router, http.MethodPost, "/v1/draft/order", "user-kop", ""), http.StatusForbidden, "forbidden")
}

func TestRouter_AuctionRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	admin := userByTeam[1]

	if rec := call(t, router, http.MethodPost, "/v1/draft/order", admin, ""); rec.Code != http.StatusCreated {
		t.Fatalf("initialize order: %d %s", rec.Code, rec.Body.String())
	}
	requireReason(t, call(t, router, http.MethodPost, "/v1/draft/order", admin, ""), http.StatusConflict, "draftOrderExists")
	if rec := call(t, router, http.MethodPost, "/v1/draft/start", admin, ""); rec.Code != http.StatusOK {
		t.Fatalf("start draft: %d %s", rec.Code, rec.Body.String())
	}

	state := decodeEnvelope[draftStateDTO](t, call(t, router, http.MethodGet, "/v1/draft", "", ""))
	opener := state.Data.CurrentTeamID
	if opener == 0 || !state.Data.Active {
		t.Fatalf("expected an active draft with a current team, got %+v", state.Data)
	}
	var rival int64
	for id := range userByTeam {
		if id != opener {
			rival = id
			break
		}
	}

	requireReason(t,
		call(t, router, http.MethodPost, "/v1/auctions", userByTeam[rival], `{"kind":"player","subjectId":1}`),
		http.StatusForbidden, "notYourTurn")
	requireReason(t,
		call(t, router, http.MethodPost, "/v1/auctions", userByTeam[opener], `{"kind":"player","subjectId":1,"extra":true}`),
		http.StatusBadRequest, "invalidInput")

	rec := call(t, router, http.MethodPost, "/v1/auctions", userByTeam[opener], `{"kind":"player","subjectId":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start auction: %d %s", rec.Code, rec.Body.String())
	}
	started := decodeEnvelope[auctionViewDTO](t, rec)
	auctionID := started.Data.Auction.ID
	if started.Data.Auction.CurrentBid != 5 || started.Data.Player == nil {
		t.Fatalf("unexpected opening auction: %+v", started.Data)
	}

	requireReason(t,
		call(t, router, http.MethodPost, "/v1/auctions", userByTeam[opener], `{"kind":"player","subjectId":3}`),
		http.StatusConflict, "auctionInProgress")

	bidPath := fmt.Sprintf("/v1/auctions/%d/bids", auctionID)
	requireReason(t, call(t, router, http.MethodPost, bidPath, userByTeam[rival], `{"amount":7}`), http.StatusBadRequest, "invalidAmount")
	if rec := call(t, router, http.MethodPost, bidPath, userByTeam[rival], `{"amount":15}`); rec.Code != http.StatusOK {
		t.Fatalf("place bid: %d %s", rec.Code, rec.Body.String())
	}

	completePath := fmt.Sprintf("/v1/auctions/%d/complete", auctionID)
	requireReason(t, call(t, router, http.MethodPost, completePath, userByTeam[rival], ""), http.StatusForbidden, "forbidden")
	rec = call(t, router, http.MethodPost, completePath, admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete auction: %d %s", rec.Code, rec.Body.String())
	}
	completed := decodeEnvelope[completeAuctionDTO](t, rec)
	if completed.Data.TeamID != rival || completed.Data.PricePaid != 15 {
		t.Fatalf("unexpected completion: %+v", completed.Data)
	}

	squadView := decodeEnvelope[squadDTO](t, call(t, router, http.MethodGet, fmt.Sprintf("/v1/teams/%d/squad", rival), "", ""))
	if squadView.Data.Team.Budget != 985 {
		t.Fatalf("expected rival budget 985, got %d", squadView.Data.Team.Budget)
	}
	if len(squadView.Data.Players) != 1 || squadView.Data.Players[0].ID != 1 {
		t.Fatalf("expected player 1 in rival squad, got %+v", squadView.Data.Players)
	}

	active := decodeEnvelope[map[string]any](t, call(t, router, http.MethodGet, "/v1/auctions/active", "", ""))
	if active.Data["active"] != false {
		t.Fatalf("expected no active auction, got %v", active.Data)
	}
}

func TestRouter_BreakBlocksAuctionStart(t *testing.T) {
	router := newTestRouter(t)
	admin := userByTeam[1]

	call(t, router, http.MethodPost, "/v1/draft/order", admin, "")
	call(t, router, http.MethodPost, "/v1/draft/start", admin, "")

	rec := call(t, router, http.MethodPost, "/v1/break/toggle", userByTeam[2], "")
	status := decodeEnvelope[breakDTO](t, rec)
	if !status.Data.OnBreak || status.Data.StartedBy != 2 {
		t.Fatalf("expected break started by team 2, got %+v", status.Data)
	}

	state := decodeEnvelope[draftStateDTO](t, call(t, router, http.MethodGet, "/v1/draft", "", ""))
	requireReason(t,
		call(t, router, http.MethodPost, "/v1/auctions", userByTeam[state.Data.CurrentTeamID], `{"kind":"club","subjectId":12}`),
		http.StatusLocked, "onBreak")

	ended := decodeEnvelope[breakDTO](t, call(t, router, http.MethodPost, "/v1/break/end", admin, ""))
	if ended.Data.OnBreak {
		t.Fatalf("expected break to be over")
	}
}

func TestRouter_PathValidation(t *testing.T) {
	router := newTestRouter(t)

	requireReason(t, call(t, router, http.MethodGet, "/v1/teams/abc/squad", "", ""), http.StatusBadRequest, "invalidInput")
	requireReason(t, call(t, router, http.MethodGet, "/v1/leaderboard?gameweek=-1", "", ""), http.StatusBadRequest, "invalidInput")
	requireReason(t, call(t, router, http.MethodGet, "/v1/teams/99/squad", "", ""), http.StatusNotFound, "notFound")
}

package fpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/riskibarqy/fantasy-auction/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	maxResponseBytes = 8 << 20
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Clock          clockwork.Clock
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public Fantasy Premier League API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
	clock      clockwork.Clock
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger.Named("fpl"),
		clock:      clock,
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker, clock),
	}
}

// Bootstrap is the subset of bootstrap-static the service consumes.
type Bootstrap struct {
	Events  []gameweek.Info
	Players []player.Player
	Clubs   []club.Club
}

func (c *Client) Bootstrap(ctx context.Context) (Bootstrap, error) {
	var payload bootstrapPayload
	if err := c.getJSON(ctx, "/bootstrap-static/", &payload); err != nil {
		return Bootstrap{}, fmt.Errorf("fetch bootstrap-static: %w", err)
	}
	return payload.toDomain(c.logger), nil
}

// Events implements gameweek.Calendar.
func (c *Client) Events(ctx context.Context) ([]gameweek.Info, error) {
	b, err := c.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	return b.Events, nil
}

// FixtureCount implements gameweek.Calendar.
func (c *Client) FixtureCount(ctx context.Context, gw int) (int, error) {
	if gw < 1 {
		return 0, fmt.Errorf("%w: gameweek must be positive", usecase.ErrInvalidInput)
	}
	var fixtures []fixturePayload
	if err := c.getJSON(ctx, "/fixtures/?event="+strconv.Itoa(gw), &fixtures); err != nil {
		return 0, fmt.Errorf("fetch fixtures gameweek=%d: %w", gw, err)
	}
	return len(fixtures), nil
}

// LiveStats implements gameweek.StatsProvider.
func (c *Client) LiveStats(ctx context.Context, gw int) (map[int64]gameweek.PlayerStats, error) {
	if gw < 1 {
		return nil, fmt.Errorf("%w: gameweek must be positive", usecase.ErrInvalidInput)
	}
	var payload livePayload
	if err := c.getJSON(ctx, fmt.Sprintf("/event/%d/live/", gw), &payload); err != nil {
		return nil, fmt.Errorf("fetch live stats gameweek=%d: %w", gw, err)
	}

	out := make(map[int64]gameweek.PlayerStats, len(payload.Elements))
	for _, el := range payload.Elements {
		if el.ID <= 0 {
			continue
		}
		out[el.ID] = gameweek.PlayerStats{
			PlayerID:    el.ID,
			TotalPoints: el.Stats.TotalPoints,
			Minutes:     el.Stats.Minutes,
			Goals:       el.Stats.GoalsScored,
			Assists:     el.Stats.Assists,
			CleanSheets: el.Stats.CleanSheets,
			Bonus:       el.Stats.Bonus,
		}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		var raw []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, func(err error) bool {
			return !isCircuitFailure(err)
		})
		return raw, err
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return fmt.Errorf("%w: fantasy data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", "fantasy-auction/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errFPLTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errFPLTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errFPLTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(backoff):
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func abbreviateBody(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

// Catalog implements usecase.CatalogSource.
func (c *Client) Catalog(ctx context.Context) ([]player.Player, []club.Club, error) {
	b, err := c.Bootstrap(ctx)
	if err != nil {
		return nil, nil, err
	}
	return b.Players, b.Clubs, nil
}

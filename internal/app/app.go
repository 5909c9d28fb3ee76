package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-auction/external/fpl"
	"github.com/riskibarqy/fantasy-auction/internal/config"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/fantasy-auction/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-auction/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-auction/internal/platform/id"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

// App owns the HTTP server and the background loops that share its services.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	server  *http.Server
	bus     *eventBus
	autoBid *usecase.AutoBidEngine
	db      *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := openRepositories(ctx, cfg, logger.Named("storage"))
	if err != nil {
		return nil, err
	}

	bus, err := newEventBus(ctx, cfg, logger)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	clock := clockwork.NewRealClock()
	ids := idgen.NewUUIDGenerator()
	rules := squad.DefaultRules()

	fplClient := fpl.NewClient(fpl.ClientConfig{
		BaseURL:        cfg.FPLBaseURL,
		Timeout:        cfg.FPLTimeout,
		MaxRetries:     cfg.FPLMaxRetries,
		Logger:         logger,
		Clock:          clock,
		CircuitBreaker: cfg.FPLCircuit,
	})
	anubisClient := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectPath,
		AdminKey:       cfg.AnubisAdminKey,
		CacheTTL:       cfg.AnubisCacheTTL,
		CircuitBreaker: cfg.AnubisCircuit,
		Clock:          clock,
		Logger:         logger,
	})

	resolver := usecase.NewDraftResolver(repos.drafts)
	drafts := usecase.NewDraftService(
		repos.drafts, repos.teams, repos.squads, resolver, rules,
		usecase.DraftConfig{Rounds: cfg.DraftRounds, StartingBudget: cfg.StartingBudget},
		bus.publisher, ids, logger.Named("draft"),
	)
	breaks := usecase.NewBreakService(bus.publisher, ids, logger.Named("break"))
	auctions := usecase.NewAuctionService(
		repos.auctions, repos.teams, repos.players, repos.clubs, repos.squads, drafts, resolver, breaks, rules,
		bus.publisher, ids, logger.Named("auction"),
	)
	autoBids := usecase.NewAutoBidEngine(
		repos.autoBids, repos.auctions, repos.teams, repos.players, repos.squads, auctions, breaks, rules,
		bus.locker, clock,
		usecase.AutoBidConfig{Interval: cfg.AutoBidInterval, LockTTL: cfg.AutoBidLockTTL},
		logger.Named("autobid"),
	)
	gameweeks := usecase.NewGameweekService(
		fplClient, fplClient,
		cache.NewStoreWithClock(cfg.BootstrapCacheTTL, clock),
		cache.NewStoreWithClock(cfg.LiveStatsCacheTTL, clock),
		logger.Named("gameweek"),
	)
	teams := usecase.NewTeamService(repos.teams, repos.squads, repos.players, repos.clubs, resolver)

	handler := httpapi.NewHandler(httpapi.Services{
		Drafts:      drafts,
		Auctions:    auctions,
		AutoBids:    autoBids,
		Breaks:      breaks,
		Teams:       teams,
		Catalog:     usecase.NewCatalogService(repos.players, repos.clubs, repos.squads, resolver, fplClient, logger.Named("catalog")),
		Gameweeks:   gameweeks,
		Submissions: usecase.NewSubmissionService(repos.submissions, repos.chips, repos.squads, repos.players, resolver, gameweeks, logger.Named("submission")),
		Chips:       usecase.NewChipService(repos.chips, repos.submissions, gameweeks, logger.Named("chip")),
		Scoring:     usecase.NewScoringService(repos.submissions, repos.points, repos.players, repos.teams, gameweeks, bus.publisher, ids, cfg.ScoringWorkers, logger.Named("scoring")),
	}, logger)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Verifier:           anubisClient,
		Teams:              teams,
		Stream:             bus.hub,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		bus:     bus,
		autoBid: autoBids,
		db:      db,
	}, nil
}

// Run serves HTTP and runs the auto-bid loop and Redis relay until ctx is
// cancelled or one of them fails. The server is shut down gracefully.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(context.Context) error {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		a.logger.Info("http server stopped")
		return nil
	})

	if a.cfg.AutoBidEnabled {
		p.Go(func(ctx context.Context) error {
			a.autoBid.Run(ctx)
			return nil
		})
	} else {
		a.logger.Info("auto-bid loop disabled", "reason", "AUTOBID_ENABLED=false")
	}

	if a.bus.relay != nil {
		p.Go(a.bus.relay.Run)
	}

	return p.Wait()
}

// Close releases the event bus and the database after Run returns.
func (a *App) Close() {
	a.bus.close(a.logger)
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database failed", "error", err)
		}
	}
}

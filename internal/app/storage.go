package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-auction/internal/config"
	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	cacherepo "github.com/riskibarqy/fantasy-auction/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-auction/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-auction/internal/platform/cache"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

type repositories struct {
	teams       team.Repository
	players     player.Repository
	clubs       club.Repository
	drafts      draft.Repository
	auctions    auction.Repository
	squads      squad.Repository
	autoBids    autobid.Repository
	submissions gameweek.SubmissionRepository
	chips       chip.Repository
	points      scoring.Repository
}

// openRepositories picks the storage driver. The returned db is nil for the
// memory driver.
func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	var (
		repos repositories
		db    *sqlx.DB
	)

	if cfg.UsePostgres() {
		var err error
		db, err = openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		repos = repositories{
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			clubs:       postgres.NewClubRepository(db),
			drafts:      postgres.NewDraftRepository(db),
			auctions:    postgres.NewAuctionRepository(db),
			squads:      postgres.NewSquadRepository(db),
			autoBids:    postgres.NewAutoBidRepository(db),
			submissions: postgres.NewSubmissionRepository(db),
			chips:       postgres.NewChipRepository(db),
			points:      postgres.NewPointsRepository(db),
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db", dbNameFromURL(cfg.DBURL))
	} else {
		store := memory.NewStore(memory.DefaultSeed())
		repos = repositories{
			teams:       store.Teams(),
			players:     store.Players(),
			clubs:       store.Clubs(),
			drafts:      store.Drafts(),
			auctions:    store.Auctions(),
			squads:      store.Squads(),
			autoBids:    store.AutoBids(),
			submissions: store.Submissions(),
			chips:       store.Chips(),
			points:      store.Points(),
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		catalog := cache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, catalog)
		repos.clubs = cacherepo.NewClubRepository(repos.clubs, catalog)
	}

	return repos, db, nil
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/porra/internal/config"
	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/vote"
	cacherepo "github.com/riskibarqy/porra/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/porra/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/porra/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/porra/internal/platform/cache"
	"github.com/riskibarqy/porra/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	players player.Repository
	riders  rider.Repository
	races   race.Repository
	votes   vote.Repository
	points  point.Repository
}

func openRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	var (
		repos repositories
		db    *sqlx.DB
	)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		opened, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		db = opened
		repos = repositories{
			players: postgres.NewPlayerRepository(db),
			riders:  postgres.NewRiderRepository(db),
			races:   postgres.NewRaceRepository(db),
			votes:   postgres.NewVoteRepository(db),
			points:  postgres.NewPointRepository(db),
		}
		logger.Info("record store ready", "driver", cfg.StoreDriver, "db_name", dbNameFromURL(cfg.DBURL))
	default:
		store := memory.NewStore()
		repos = repositories{
			players: store.Players,
			riders:  store.Riders,
			races:   store.Races,
			votes:   store.Votes,
			points:  store.Points,
		}
		logger.Info("record store ready", "driver", config.StoreMemory)
	}

	if cfg.CacheEnabled {
		refCache := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, refCache)
		repos.riders = cacherepo.NewRiderRepository(repos.riders, refCache)
	}

	return repos, db, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.ServiceName),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

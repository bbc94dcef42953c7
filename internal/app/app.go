package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/porra/external/motogp"
	"github.com/riskibarqy/porra/internal/config"
	"github.com/riskibarqy/porra/internal/interfaces/httpapi"
	"github.com/riskibarqy/porra/internal/observability"
	"github.com/riskibarqy/porra/internal/platform/logging"
	"github.com/riskibarqy/porra/internal/platform/resilience"
	"github.com/riskibarqy/porra/internal/usecase"
)

// App owns the HTTP server and the resources it was built from.
type App struct {
	Server    *http.Server
	db        *sqlx.DB
	scheduler gocron.Scheduler
	logger    *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := openRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}
	out := &App{db: db, logger: logger}

	var (
		businessMetrics usecase.Metrics
		feedObserver    motogp.RequestObserver
		routerCfg       = httpapi.RouterConfig{
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			InternalJobToken:   cfg.InternalJobToken,
			SwaggerEnabled:     cfg.SwaggerEnabled,
		}
	)
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics()
		businessMetrics = metrics
		feedObserver = metrics
		routerCfg.Metrics = metrics
		routerCfg.MetricsHandler = metrics.Handler()
	}

	feed := motogp.NewClient(motogp.ClientConfig{
		BaseURL:    cfg.MotoGPBaseURL,
		Timeout:    cfg.MotoGPTimeout,
		MaxRetries: cfg.MotoGPMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MotoGPCircuitEnabled,
			FailureThreshold: cfg.MotoGPCircuitFailureCount,
			OpenTimeout:      cfg.MotoGPCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MotoGPCircuitHalfOpenMaxReq,
		},
		Observer: feedObserver,
	})

	scoringSvc := usecase.NewScoringService(repos.races, repos.riders, repos.votes, repos.points, businessMetrics, logger)
	calendarSvc := usecase.NewCalendarService(feed, repos.races, logger)
	syncSvc := usecase.NewResultsSyncService(usecase.ResultsSyncConfig{
		Category: cfg.MotoGPCategory,
		Workers:  cfg.ResultsSyncWorkers,
	}, feed, repos.races, scoringSvc, logger)

	handler := httpapi.NewHandler(httpapi.Services{
		Votes: usecase.NewVoteService(
			usecase.VoteServiceConfig{MaxVotesPerRider: cfg.VoteMaxPerRider},
			repos.races,
			repos.players,
			repos.riders,
			repos.votes,
			businessMetrics,
			logger,
		),
		Scoring:     scoringSvc,
		Stats:       usecase.NewStatsService(repos.players, repos.riders, repos.races, repos.votes, repos.points),
		Bootstrap:   usecase.NewBootstrapService(usecase.DefaultRoster(), repos.players, repos.riders, calendarSvc, logger),
		Calendar:    calendarSvc,
		Results:     usecase.NewResultsService(feed),
		ResultsSync: syncSvc,
	}, logger)

	if cfg.ResultsSyncEnabled {
		scheduler, err := newResultsSyncScheduler(cfg.ResultsSyncInterval, syncSvc, logger)
		if err != nil {
			_ = out.Close(context.Background())
			return nil, err
		}
		out.scheduler = scheduler
	}

	out.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return out, nil
}

// Start launches background jobs. The caller runs the HTTP server.
func (a *App) Start() {
	if a.scheduler == nil {
		return
	}
	a.scheduler.Start()
	a.logger.Info("results sync scheduler started")
}

// Close stops background jobs and releases the database handle. The HTTP
// server is shut down by the caller.
func (a *App) Close(_ context.Context) error {
	var errs []error
	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown scheduler: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

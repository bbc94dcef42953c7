package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/porra/internal/platform/logging"
	"github.com/riskibarqy/porra/internal/usecase"
)

type resultsSyncer interface {
	Sync(ctx context.Context) (usecase.ResultsSyncResult, error)
}

// newResultsSyncScheduler runs the sync every interval. A run still in
// flight when the next tick fires pushes that tick back.
func newResultsSyncScheduler(interval time.Duration, job resultsSyncer, logger *logging.Logger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runResultsSync(interval, job, logger)
		}),
		gocron.WithName("results-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("register results sync job: %w", err)
	}

	return scheduler, nil
}

func runResultsSync(timeout time.Duration, job resultsSyncer, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	started := time.Now()
	result, err := job.Sync(ctx)
	switch {
	case errors.Is(err, usecase.ErrConflict):
		logger.InfoContext(ctx, "results sync skipped, previous run still active")
	case err != nil:
		logger.ErrorContext(ctx, "results sync failed", "error", err)
	default:
		logger.InfoContext(ctx, "results sync finished",
			"races", result.RaceCount,
			"sessions", result.SessionCount,
			"awarded", result.AwardedCount,
			"failed", result.FailedCount,
			"points_written", result.PointsWritten,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/platform/logging"
)

const (
	DefaultResultsCategory = "MotoGP™"

	// SessionStatusFinished is the feed status of a session with a final classification.
	SessionStatusFinished = "FINISHED"

	syncStatusAwarded  = "awarded"
	syncStatusPending  = "pending"
	syncStatusEmpty    = "empty"
	syncStatusSkipped  = "skipped"
	syncStatusDeclined = "declined"
	syncStatusFailed   = "failed"
)

type ResultsSyncConfig struct {
	Category string
	Workers  int
}

type ResultsSyncResult struct {
	RaceCount     int                   `json:"race_count"`
	SessionCount  int                   `json:"session_count"`
	AwardedCount  int                   `json:"awarded_count"`
	SkippedCount  int                   `json:"skipped_count"`
	FailedCount   int                   `json:"failed_count"`
	PointsWritten int                   `json:"points_written"`
	Sessions      []ResultsSyncTaskItem `json:"sessions"`
}

type ResultsSyncTaskItem struct {
	RaceID      int64  `json:"race_id"`
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name"`
	Status      string `json:"status"`
	Awarded     int    `json:"awarded"`
	DurationMs  int64  `json:"duration_ms"`
	Message     string `json:"message,omitempty"`
}

type sessionScorer interface {
	AwardSession(ctx context.Context, input AwardSessionInput) ScoringOutcome
}

type syncTask struct {
	race    race.Race
	session ExternalSession
}

// ResultsSyncService scores every finished session of races that already
// started. Sessions scored earlier are skipped by the scoring idempotence
// guard, so a session is only submitted once the feed marks it finished.
type ResultsSyncService struct {
	cfg      ResultsSyncConfig
	feed     ResultsFeed
	raceRepo race.Repository
	scorer   sessionScorer
	logger   *logging.Logger
	now      func() time.Time
	running  atomic.Bool
}

func NewResultsSyncService(cfg ResultsSyncConfig, feed ResultsFeed, raceRepo race.Repository, scorer sessionScorer, logger *logging.Logger) *ResultsSyncService {
	if strings.TrimSpace(cfg.Category) == "" {
		cfg.Category = DefaultResultsCategory
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsSyncService{
		cfg:      cfg,
		feed:     feed,
		raceRepo: raceRepo,
		scorer:   scorer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ResultsSyncService) Sync(ctx context.Context) (ResultsSyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return ResultsSyncResult{}, fmt.Errorf("%w: results sync already running", ErrConflict)
	}
	defer s.running.Store(false)

	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsSyncService.Sync")
	defer span.End()

	result, err := s.sync(ctx)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "results sync failed", "error", err)
		return ResultsSyncResult{}, err
	}

	s.logger.InfoContext(ctx, "results sync finished",
		"races", result.RaceCount,
		"sessions", result.SessionCount,
		"awarded", result.AwardedCount,
		"failed", result.FailedCount,
		"points_written", result.PointsWritten,
	)
	return result, nil
}

func (s *ResultsSyncService) sync(ctx context.Context) (ResultsSyncResult, error) {
	races, err := s.raceRepo.List(ctx)
	if err != nil {
		return ResultsSyncResult{}, storageErr("list races", err)
	}
	due := dueRaces(races, s.now())
	result := ResultsSyncResult{RaceCount: len(due)}
	if len(due) == 0 {
		return result, nil
	}

	seasons, err := s.feed.ListSeasons(ctx)
	if err != nil {
		return ResultsSyncResult{}, fmt.Errorf("list seasons: %w", err)
	}
	seasonByYear := make(map[int]string, len(seasons))
	for _, item := range seasons {
		seasonByYear[item.Year] = item.ID
	}

	categoryBySeason := make(map[string]string)
	tasks := make([]syncTask, 0)
	for _, item := range due {
		seasonID, ok := seasonByYear[item.RaceDate.UTC().Year()]
		if !ok {
			s.logger.WarnContext(ctx, "no feed season for race", "race_id", item.ID, "year", item.RaceDate.UTC().Year())
			continue
		}
		categoryID, ok := categoryBySeason[seasonID]
		if !ok {
			categoryID, err = s.resolveCategory(ctx, seasonID)
			if err != nil {
				return ResultsSyncResult{}, err
			}
			categoryBySeason[seasonID] = categoryID
		}

		sessions, err := s.feed.ListSessions(ctx, item.ExternalEventID, categoryID)
		if err != nil {
			return ResultsSyncResult{}, fmt.Errorf("list sessions race=%d: %w", item.ID, err)
		}
		for _, session := range sessions {
			tasks = append(tasks, syncTask{race: item, session: session})
		}
	}
	result.SessionCount = len(tasks)
	if len(tasks) == 0 {
		return result, nil
	}

	rows, err := s.runTasks(ctx, tasks)
	if err != nil {
		return ResultsSyncResult{}, err
	}
	for _, row := range rows {
		switch row.Status {
		case syncStatusAwarded:
			result.AwardedCount++
			result.PointsWritten += row.Awarded
		case syncStatusFailed:
			result.FailedCount++
		default:
			result.SkippedCount++
		}
	}
	result.Sessions = rows
	return result, nil
}

func (s *ResultsSyncService) runTasks(ctx context.Context, tasks []syncTask) ([]ResultsSyncTaskItem, error) {
	workerCount := s.cfg.Workers
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan ResultsSyncTaskItem, len(tasks))
	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.runTask(ctx, task)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()
	close(results)

	out := make([]ResultsSyncTaskItem, 0, len(tasks))
	for row := range results {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RaceID != out[j].RaceID {
			return out[i].RaceID < out[j].RaceID
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out, nil
}

func (s *ResultsSyncService) runTask(ctx context.Context, task syncTask) (row ResultsSyncTaskItem) {
	start := time.Now()
	row = ResultsSyncTaskItem{
		RaceID:      task.race.ID,
		SessionID:   task.session.ID,
		SessionName: point.SessionName(strings.TrimSpace(task.session.Type), task.session.Number),
	}
	defer func() { row.DurationMs = time.Since(start).Milliseconds() }()

	if err := ctx.Err(); err != nil {
		row.Status, row.Message = syncStatusFailed, err.Error()
		return row
	}
	if !sessionFinished(task.session) {
		row.Status, row.Message = syncStatusPending, "session not finished"
		return row
	}

	classification, err := s.feed.GetClassification(ctx, task.session.ID)
	if err != nil {
		row.Status, row.Message = syncStatusFailed, err.Error()
		return row
	}
	if !awardsPoints(classification) {
		row.Status, row.Message = syncStatusSkipped, "session awards no points"
		return row
	}

	out := s.scorer.AwardSession(ctx, AwardSessionInput{
		ExternalEventID: task.race.ExternalEventID,
		Session:         task.session,
		Classification:  classification,
	})
	row.Awarded = out.Awarded
	row.Message = out.Message
	switch {
	case out.Awarded > 0:
		row.Status = syncStatusAwarded
	case out.Success:
		row.Status = syncStatusEmpty
	case errors.Is(out.Err, ErrAlreadyScored):
		row.Status = syncStatusSkipped
	case errors.Is(out.Err, ErrDependencyUnavailable):
		row.Status = syncStatusFailed
	default:
		row.Status = syncStatusDeclined
	}
	return row
}

// resolveCategory finds the configured category by name, falling back to the
// first one the feed lists.
func (s *ResultsSyncService) resolveCategory(ctx context.Context, seasonID string) (string, error) {
	items, err := s.feed.ListCategories(ctx, seasonID)
	if err != nil {
		return "", fmt.Errorf("list categories season=%s: %w", seasonID, err)
	}
	if len(items) == 0 {
		return "", fmt.Errorf("%w: no categories for season %s", ErrNotFound, seasonID)
	}
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Name), s.cfg.Category) {
			return item.ID, nil
		}
	}
	return items[0].ID, nil
}

// dueRaces returns races with a feed event whose race date has passed.
func dueRaces(items []race.Race, now time.Time) []race.Race {
	out := make([]race.Race, 0, len(items))
	for _, item := range race.SortByDate(items) {
		if strings.TrimSpace(item.ExternalEventID) == "" || item.RaceDate.After(now) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func sessionFinished(session ExternalSession) bool {
	return strings.EqualFold(strings.TrimSpace(session.Status), SessionStatusFinished)
}

func awardsPoints(items []ClassificationEntry) bool {
	for _, item := range items {
		if item.Points > 0 {
			return true
		}
	}
	return false
}

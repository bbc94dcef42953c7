package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/platform/logging"
)

// Roster is the fixed set of players and riders a fresh store is seeded with.
type Roster struct {
	Players []player.Player
	Riders  []rider.Rider
}

type BootstrapStatus struct {
	NeedsSeeding bool
	Players      int
	Riders       int
}

type BootstrapResult struct {
	Players    int
	Riders     int
	SeasonYear int
	Races      int
}

type calendarImporter interface {
	Import(ctx context.Context) (CalendarImportResult, error)
}

// BootstrapService seeds an empty store with the roster and the calendar.
type BootstrapService struct {
	roster     Roster
	playerRepo player.Repository
	riderRepo  rider.Repository
	calendar   calendarImporter
	logger     *logging.Logger
}

func NewBootstrapService(roster Roster, playerRepo player.Repository, riderRepo rider.Repository, calendar calendarImporter, logger *logging.Logger) *BootstrapService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BootstrapService{
		roster:     roster,
		playerRepo: playerRepo,
		riderRepo:  riderRepo,
		calendar:   calendar,
		logger:     logger,
	}
}

// Status reports whether seeding is required. Missing player or rider
// collections count as needing seeding rather than as errors.
func (s *BootstrapService) Status(ctx context.Context) (BootstrapStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BootstrapService.Status")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if errors.Is(err, player.ErrCollectionMissing) {
		return BootstrapStatus{NeedsSeeding: true}, nil
	}
	if err != nil {
		return BootstrapStatus{}, storageErr("list players", err)
	}
	riders, err := s.riderRepo.List(ctx)
	if errors.Is(err, rider.ErrCollectionMissing) {
		return BootstrapStatus{NeedsSeeding: true, Players: len(players)}, nil
	}
	if err != nil {
		return BootstrapStatus{}, storageErr("list riders", err)
	}

	return BootstrapStatus{
		NeedsSeeding: len(players) == 0,
		Players:      len(players),
		Riders:       len(riders),
	}, nil
}

// Seed upserts the roster, then imports the calendar. Players and riders stay
// seeded even when the calendar import fails.
func (s *BootstrapService) Seed(ctx context.Context) (BootstrapResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BootstrapService.Seed")
	defer span.End()

	for _, item := range s.roster.Players {
		if err := item.Validate(); err != nil {
			return BootstrapResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	for _, item := range s.roster.Riders {
		if err := item.Validate(); err != nil {
			return BootstrapResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	if err := s.playerRepo.Upsert(ctx, s.roster.Players); err != nil {
		recordSpanError(span, err)
		return BootstrapResult{}, storageErr("upsert players", err)
	}
	if err := s.riderRepo.Upsert(ctx, s.roster.Riders); err != nil {
		recordSpanError(span, err)
		return BootstrapResult{}, storageErr("upsert riders", err)
	}

	out := BootstrapResult{Players: len(s.roster.Players), Riders: len(s.roster.Riders)}
	imported, err := s.calendar.Import(ctx)
	if err != nil {
		recordSpanError(span, err)
		return out, fmt.Errorf("import calendar: %w", err)
	}
	out.SeasonYear = imported.SeasonYear
	out.Races = len(imported.Races)

	s.logger.InfoContext(ctx, "store seeded", "players", out.Players, "riders", out.Riders, "races", out.Races)
	return out, nil
}

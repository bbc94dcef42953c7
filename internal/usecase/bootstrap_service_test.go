package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/porra/internal/mocks/domain/player"
	ridermock "github.com/riskibarqy/porra/internal/mocks/domain/rider"
	"github.com/stretchr/testify/mock"
)

type stubCalendar struct {
	result CalendarImportResult
	err    error
	calls  int
}

func (s *stubCalendar) Import(context.Context) (CalendarImportResult, error) {
	s.calls++
	return s.result, s.err
}

func TestBootstrapService_StatusAndSeed(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	calendar := &stubCalendar{result: CalendarImportResult{SeasonYear: 2026, Races: BuildCalendar(calendarEvents())}}
	svc := NewBootstrapService(DefaultRoster(), store.Players, store.Riders, calendar, nil)
	ctx := t.Context()

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.NeedsSeeding {
		t.Fatalf("expected empty store to need seeding")
	}

	got, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got.Players != 12 || got.Riders != 22 || got.Races != 3 || got.SeasonYear != 2026 {
		t.Fatalf("unexpected seed result: %+v", got)
	}

	status, _ = svc.Status(ctx)
	if status.NeedsSeeding || status.Players != 12 || status.Riders != 22 {
		t.Fatalf("unexpected status after seeding: %+v", status)
	}
}

func TestBootstrapService_SeedKeepsRosterWhenCalendarFails(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	calendar := &stubCalendar{err: ErrDependencyUnavailable}
	svc := NewBootstrapService(DefaultRoster(), store.Players, store.Riders, calendar, nil)

	got, err := svc.Seed(t.Context())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected calendar failure, got %v", err)
	}
	if got.Players != 12 {
		t.Fatalf("unexpected partial result: %+v", got)
	}
	players, _ := store.Players.List(t.Context())
	if len(players) != 12 {
		t.Fatalf("expected players to stay seeded, got %d", len(players))
	}
}

func TestBootstrapService_MissingCollectionNeedsSeedingUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	riderRepo := ridermock.NewRepository(t)
	playerRepo.On("List", mock.Anything).Return(nil, player.ErrCollectionMissing).Once()

	svc := NewBootstrapService(DefaultRoster(), playerRepo, riderRepo, &stubCalendar{}, nil)
	status, err := svc.Status(t.Context())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.NeedsSeeding {
		t.Fatalf("expected missing players collection to need seeding")
	}
}

func TestBootstrapService_RejectsInvalidRoster(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	roster := Roster{Riders: []rider.Rider{{ID: 1, Name: "", Number: 1}}}
	svc := NewBootstrapService(roster, store.Players, store.Riders, &stubCalendar{}, nil)

	if _, err := svc.Seed(t.Context()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/vote"
	"github.com/riskibarqy/porra/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/porra/internal/mocks/domain/player"
	pointmock "github.com/riskibarqy/porra/internal/mocks/domain/point"
	racemock "github.com/riskibarqy/porra/internal/mocks/domain/race"
	ridermock "github.com/riskibarqy/porra/internal/mocks/domain/rider"
	votemock "github.com/riskibarqy/porra/internal/mocks/domain/vote"
	"github.com/stretchr/testify/mock"
)

func newTestStatsService(store *memory.Store) *StatsService {
	svc := NewStatsService(store.Players, store.Riders, store.Races, store.Votes, store.Points)
	svc.now = fixedClock(testNow)
	return svc
}

func TestStatsService_Overview(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx := t.Context()
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 1, RaceID: 1, RiderID: 1})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 1, RaceID: 2, RiderID: 2, IsLocked: true})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 3, RaceID: 2, RiderID: 1})
	_ = store.Points.InsertBatch(ctx, []point.Point{
		{PlayerID: 1, RaceID: 1, RiderID: 1, SessionID: "s1", SessionName: "RAC", Points: 25},
	})

	view, err := newTestStatsService(store).Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if !view.HasNextRace || view.Window.Race.ID != 2 || !view.Window.Open {
		t.Fatalf("unexpected window: %+v", view.Window)
	}
	if view.CalendarYear != 2026 {
		t.Fatalf("unexpected calendar year: got=%d want=2026", view.CalendarYear)
	}
	if len(view.Players) != 12 || len(view.Riders) != 22 {
		t.Fatalf("unexpected roster sizes: players=%d riders=%d", len(view.Players), len(view.Riders))
	}
	if len(view.Snapshot.Bets) != 2 {
		t.Fatalf("unexpected bets: %+v", view.Snapshot.Bets)
	}
	leader := view.Snapshot.Standings[0]
	if leader.PlayerID != 1 || leader.Points != 25 || leader.Gap != 0 {
		t.Fatalf("unexpected leader: %+v", leader)
	}
	if view.Snapshot.Summary.MostVoted == nil || view.Snapshot.Summary.MostVoted.RiderID != 1 {
		t.Fatalf("unexpected most voted: %+v", view.Snapshot.Summary.MostVoted)
	}
}

func TestStatsService_PlayerHistory(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx := t.Context()
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 5, RaceID: 1, RiderID: 3})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 5, RaceID: 2, RiderID: 3})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 5, RaceID: 3, RiderID: 9})

	svc := newTestStatsService(store)
	who, history, _, err := svc.PlayerHistory(ctx, 5)
	if err != nil {
		t.Fatalf("player history: %v", err)
	}
	if who.Name != "DAVITXI" {
		t.Fatalf("unexpected player: %+v", who)
	}
	if len(history) != 2 || history[0].RiderID != 3 || history[0].Count != 2 {
		t.Fatalf("unexpected history: %+v", history)
	}

	if _, _, _, err := svc.PlayerHistory(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, _, err := svc.PlayerHistory(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_EmptyPlayersNeedsBootstrap(t *testing.T) {
	t.Parallel()

	_, err := newTestStatsService(memory.NewStore()).Overview(t.Context())
	if !errors.Is(err, ErrBootstrapRequired) {
		t.Fatalf("expected ErrBootstrapRequired, got %v", err)
	}
}

func TestStatsService_MissingCollectionsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	riderRepo := ridermock.NewRepository(t)
	raceRepo := racemock.NewRepository(t)
	voteRepo := votemock.NewRepository(t)
	pointRepo := pointmock.NewRepository(t)

	playerRepo.On("List", mock.Anything).Return(nil, player.ErrCollectionMissing).Maybe()
	riderRepo.On("List", mock.Anything).Return([]rider.Rider{}, nil).Maybe()
	raceRepo.On("List", mock.Anything).Return([]race.Race{}, nil).Maybe()
	voteRepo.On("List", mock.Anything).Return([]vote.Vote{}, nil).Maybe()
	pointRepo.On("List", mock.Anything).Return([]point.Point{}, nil).Maybe()

	svc := NewStatsService(playerRepo, riderRepo, raceRepo, voteRepo, pointRepo)
	_, err := svc.Load(ctx)
	if !errors.Is(err, ErrBootstrapRequired) {
		t.Fatalf("expected ErrBootstrapRequired, got %v", err)
	}
	if !errors.Is(err, player.ErrCollectionMissing) {
		t.Fatalf("expected wrapped ErrCollectionMissing, got %v", err)
	}
}

package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/infrastructure/repository/memory"
)

// Friday of a race weekend; voting closes that day at 14:00 UTC.
var testRaceDate = time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC)

// Monday of the same week.
var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func seededStore() *memory.Store {
	store := memory.NewStore()
	roster := DefaultRoster()
	_ = store.Players.Upsert(context.Background(), roster.Players)
	_ = store.Riders.Upsert(context.Background(), roster.Riders)
	_ = store.Races.Replace(context.Background(), []race.Race{
		{ID: 1, Name: "Thailand", RaceDate: time.Date(2026, 2, 27, 11, 0, 0, 0, time.UTC), ExternalEventID: "evt-1"},
		{ID: 2, Name: "Brazil", RaceDate: testRaceDate, ExternalEventID: "evt-2"},
		{ID: 3, Name: "Americas", RaceDate: time.Date(2026, 3, 20, 11, 0, 0, 0, time.UTC), ExternalEventID: "evt-3"},
	})
	return store
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type recordingMetrics struct {
	mu      sync.Mutex
	votes   map[string]int
	scoring map[string]int
	awarded int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{votes: map[string]int{}, scoring: map[string]int{}}
}

func (m *recordingMetrics) VoteCast(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes[result]++
}

func (m *recordingMetrics) SessionScored(result string, awarded int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoring[result]++
	m.awarded += awarded
}

type fakeFeed struct {
	mu              sync.Mutex
	seasons         []ExternalSeason
	categories      []ExternalCategory
	events          []ExternalEvent
	sessions        map[string][]ExternalSession
	classifications map[string][]ClassificationEntry
	standings       []StandingEntry
	err             error
	classifyCalls   int
	lastFinished    bool
}

func (f *fakeFeed) ListSeasons(context.Context) ([]ExternalSeason, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]ExternalSeason(nil), f.seasons...), nil
}

func (f *fakeFeed) ListCategories(context.Context, string) ([]ExternalCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeFeed) ListEvents(_ context.Context, _ string, finishedOnly bool) ([]ExternalEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.lastFinished = finishedOnly
	f.mu.Unlock()
	return f.events, nil
}

func (f *fakeFeed) ListSessions(_ context.Context, eventID, _ string) ([]ExternalSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[eventID], nil
}

func (f *fakeFeed) GetClassification(_ context.Context, sessionID string) ([]ClassificationEntry, error) {
	f.mu.Lock()
	f.classifyCalls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.classifications[sessionID], nil
}

func (f *fakeFeed) GetWorldStandings(context.Context, string, string) ([]StandingEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.standings, nil
}

func intPtr(v int) *int { return &v }

var (
	_ player.Repository = (*memory.PlayerRepository)(nil)
	_ rider.Repository  = (*memory.RiderRepository)(nil)
	_ race.Repository   = (*memory.RaceRepository)(nil)
)

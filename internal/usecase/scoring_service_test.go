package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/vote"
	"github.com/riskibarqy/porra/internal/infrastructure/repository/memory"
	pointmock "github.com/riskibarqy/porra/internal/mocks/domain/point"
	racemock "github.com/riskibarqy/porra/internal/mocks/domain/race"
	ridermock "github.com/riskibarqy/porra/internal/mocks/domain/rider"
	votemock "github.com/riskibarqy/porra/internal/mocks/domain/vote"
	"github.com/stretchr/testify/mock"
)

func newTestScoringService(store *memory.Store, metrics Metrics) *ScoringService {
	return NewScoringService(store.Races, store.Riders, store.Votes, store.Points, metrics, nil)
}

func raceSession() ExternalSession {
	return ExternalSession{ID: "sess-rac", Type: "RAC"}
}

func TestScoringService_AwardSession_IsIdempotent(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx := t.Context()
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 1, RaceID: 2, RiderID: 1})
	metrics := newRecordingMetrics()
	svc := newTestScoringService(store, metrics)

	input := AwardSessionInput{
		ExternalEventID: "evt-2",
		Session:         raceSession(),
		Classification:  []ClassificationEntry{{Position: 1, RiderNumber: 93, Points: 25}},
	}

	out := svc.AwardSession(ctx, input)
	if !out.Success || out.Awarded != 1 || out.RaceID != 2 {
		t.Fatalf("unexpected first outcome: %+v", out)
	}

	out = svc.AwardSession(ctx, input)
	if out.Success || !errors.Is(out.Err, ErrAlreadyScored) {
		t.Fatalf("expected already scored, got success=%v err=%v", out.Success, out.Err)
	}

	items, _ := store.Points.List(ctx)
	if len(items) != 1 {
		t.Fatalf("unexpected point rows: got=%d want=1", len(items))
	}
	want := point.Point{ID: 1, PlayerID: 1, RaceID: 2, RiderID: 1, SessionID: "sess-rac", SessionName: "RAC", Points: 25}
	if items[0] != want {
		t.Fatalf("unexpected point: got=%+v want=%+v", items[0], want)
	}
	if metrics.scoring["awarded"] != 1 || metrics.scoring["already_scored"] != 1 || metrics.awarded != 1 {
		t.Fatalf("unexpected scoring metrics: %+v awarded=%d", metrics.scoring, metrics.awarded)
	}
}

func TestScoringService_AwardSession_MatchesVotesByRiderNumber(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx := t.Context()
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 1, RaceID: 2, RiderID: 18})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 2, RaceID: 2, RiderID: 8})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 3, RaceID: 2, RiderID: 2})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 4, RaceID: 2, RiderID: 18})
	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 5, RaceID: 1, RiderID: 18})
	svc := newTestScoringService(store, nil)

	out := svc.AwardSession(ctx, AwardSessionInput{
		ExternalEventID: "evt-2",
		Session:         ExternalSession{ID: "sess-spr", Type: "SPR", Number: intPtr(1)},
		Classification: []ClassificationEntry{
			{Position: 1, RiderNumber: 10, Points: 12},
			{Position: 2, RiderNumber: 63, Points: 0},
			{Position: 3, RiderNumber: 999, Points: 7},
		},
	})
	if !out.Success || out.Awarded != 2 {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	items, _ := store.Points.List(ctx)
	for _, item := range items {
		if item.RiderID != 18 || item.Points != 12 || item.SessionName != "SPR 1" {
			t.Fatalf("unexpected point row: %+v", item)
		}
		if item.PlayerID != 1 && item.PlayerID != 4 {
			t.Fatalf("unexpected player credited: %d", item.PlayerID)
		}
	}
}

func TestScoringService_AwardSession_EmptyOutcomes(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx := t.Context()
	svc := newTestScoringService(store, nil)

	out := svc.AwardSession(ctx, AwardSessionInput{ExternalEventID: "evt-2", Session: raceSession()})
	if !out.Success || out.Awarded != 0 || out.Message != "no votes for this race" {
		t.Fatalf("unexpected outcome without votes: %+v", out)
	}

	_ = store.Votes.Insert(ctx, vote.Vote{PlayerID: 1, RaceID: 2, RiderID: 1})
	out = svc.AwardSession(ctx, AwardSessionInput{
		ExternalEventID: "evt-2",
		Session:         raceSession(),
		Classification:  []ClassificationEntry{{Position: 1, RiderNumber: 63, Points: 25}},
	})
	if !out.Success || out.Awarded != 0 || out.Message != "no one scored in this session" {
		t.Fatalf("unexpected outcome without scorers: %+v", out)
	}

	items, _ := store.Points.List(ctx)
	if len(items) != 0 {
		t.Fatalf("empty outcomes must not write points, got %d", len(items))
	}
}

func TestScoringService_AwardSession_RaceNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestScoringService(seededStore(), nil)
	out := svc.AwardSession(t.Context(), AwardSessionInput{ExternalEventID: "missing", Session: raceSession()})
	if out.Success || !errors.Is(out.Err, ErrRaceNotFound) {
		t.Fatalf("expected race not found, got success=%v err=%v", out.Success, out.Err)
	}

	out = svc.AwardSession(t.Context(), AwardSessionInput{ExternalEventID: "evt-2"})
	if out.Success || !errors.Is(out.Err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty session id, got %v", out.Err)
	}
}

func TestScoringService_AwardSession_StoreRecheckUsingMockery(t *testing.T) {
	t.Parallel()

	raceRepo := racemock.NewRepository(t)
	riderRepo := ridermock.NewRepository(t)
	voteRepo := votemock.NewRepository(t)
	pointRepo := pointmock.NewRepository(t)

	raceRepo.On("GetByExternalEventID", mock.Anything, "evt-2").
		Return(race.Race{ID: 2, ExternalEventID: "evt-2"}, true, nil).
		Once()
	pointRepo.On("ExistsForSession", mock.Anything, int64(2), "sess-rac").
		Return(false, nil).
		Once()
	voteRepo.On("ListByRace", mock.Anything, int64(2)).
		Return([]vote.Vote{{PlayerID: 1, RaceID: 2, RiderID: 1}}, nil).
		Once()
	riderRepo.On("List", mock.Anything).
		Return([]rider.Rider{{ID: 1, Name: "Marc Márquez", Number: 93}}, nil).
		Once()
	pointRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(items []point.Point) bool {
		return len(items) == 1 && items[0].Points == 25
	})).
		Return(point.ErrSessionAlreadyScored).
		Once()

	svc := NewScoringService(raceRepo, riderRepo, voteRepo, pointRepo, nil, nil)
	out := svc.AwardSession(t.Context(), AwardSessionInput{
		ExternalEventID: "evt-2",
		Session:         raceSession(),
		Classification:  []ClassificationEntry{{RiderNumber: 93, Points: 25}},
	})
	if out.Success || !errors.Is(out.Err, ErrAlreadyScored) {
		t.Fatalf("expected already scored from store recheck, got success=%v err=%v", out.Success, out.Err)
	}
}

func TestScoringService_AwardSession_StorageFailureUsingMockery(t *testing.T) {
	t.Parallel()

	raceRepo := racemock.NewRepository(t)
	pointRepo := pointmock.NewRepository(t)

	raceRepo.On("GetByExternalEventID", mock.Anything, "evt-2").
		Return(race.Race{ID: 2}, true, nil).
		Once()
	pointRepo.On("ExistsForSession", mock.Anything, int64(2), "sess-rac").
		Return(false, errors.New("timeout")).
		Once()

	svc := NewScoringService(raceRepo, ridermock.NewRepository(t), votemock.NewRepository(t), pointRepo, nil, nil)
	out := svc.AwardSession(t.Context(), AwardSessionInput{ExternalEventID: "evt-2", Session: raceSession()})
	if out.Success || !errors.Is(out.Err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency failure, got success=%v err=%v", out.Success, out.Err)
	}
}

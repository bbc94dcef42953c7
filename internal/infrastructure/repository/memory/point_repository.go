package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/porra/internal/domain/point"
)

type PointRepository struct {
	mu     sync.RWMutex
	items  []point.Point
	nextID int64
}

func NewPointRepository(items []point.Point) *PointRepository {
	repo := &PointRepository{items: append([]point.Point(nil), items...)}
	for _, item := range items {
		if item.ID > repo.nextID {
			repo.nextID = item.ID
		}
	}
	return repo
}

func (r *PointRepository) List(_ context.Context) ([]point.Point, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]point.Point(nil), r.items...), nil
}

func (r *PointRepository) ExistsForSession(_ context.Context, raceID int64, sessionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.hasSession(raceID, sessionID), nil
}

// InsertBatch assigns ids and appends the whole batch under one lock.
func (r *PointRepository) InsertBatch(_ context.Context, items []point.Point) error {
	if err := point.ValidateBatch(items); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasSession(items[0].RaceID, items[0].SessionID) {
		return point.ErrSessionAlreadyScored
	}
	for _, item := range items {
		r.nextID++
		item.ID = r.nextID
		r.items = append(r.items, item)
	}
	return nil
}

func (r *PointRepository) hasSession(raceID int64, sessionID string) bool {
	for _, item := range r.items {
		if item.RaceID == raceID && item.SessionID == sessionID {
			return true
		}
	}
	return false
}

func (r *PointRepository) hasRace(raceID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.RaceID == raceID {
			return true
		}
	}
	return false
}

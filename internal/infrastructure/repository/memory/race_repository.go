package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/porra/internal/domain/race"
)

type RaceRepository struct {
	mu    sync.RWMutex
	items map[int64]race.Race
	// referenced reports races that votes or points still point at.
	referenced func(raceID int64) bool
}

func NewRaceRepository(items []race.Race) *RaceRepository {
	index := make(map[int64]race.Race, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return &RaceRepository{items: index}
}

// List returns races ordered by race date.
func (r *RaceRepository) List(_ context.Context) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return race.SortByDate(out), nil
}

func (r *RaceRepository) GetByExternalEventID(_ context.Context, externalEventID string) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if externalEventID == "" {
		return race.Race{}, false, nil
	}
	for _, item := range r.items {
		if item.ExternalEventID == externalEventID {
			return item, true, nil
		}
	}
	return race.Race{}, false, nil
}

// Replace stores items as the whole calendar. Races left out of items are
// dropped unless votes or points reference them; those lose their event id.
func (r *RaceRepository) Replace(_ context.Context, items []race.Race) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keep := make(map[int64]struct{}, len(items))
	for _, item := range items {
		keep[item.ID] = struct{}{}
	}
	for id, item := range r.items {
		if _, ok := keep[id]; ok {
			continue
		}
		if r.referenced != nil && r.referenced(id) {
			item.ExternalEventID = ""
			r.items[id] = item
			continue
		}
		delete(r.items, id)
	}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}

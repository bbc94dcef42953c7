package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/porra/internal/domain/rider"
)

type RiderRepository struct {
	mu    sync.RWMutex
	items map[int64]rider.Rider
}

func NewRiderRepository(items []rider.Rider) *RiderRepository {
	index := make(map[int64]rider.Rider, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return &RiderRepository{items: index}
}

func (r *RiderRepository) List(_ context.Context) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Rider, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RiderRepository) GetByID(_ context.Context, riderID int64) (rider.Rider, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[riderID]
	return item, ok, nil
}

func (r *RiderRepository) Upsert(_ context.Context, items []rider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}

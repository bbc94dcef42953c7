package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/rider"
	basecache "github.com/riskibarqy/porra/internal/platform/cache"
)

const (
	playerKeyPrefix = "player:"
	riderKeyPrefix  = "rider:"
)

// PlayerRepository reads players through the cache. Upsert drops every
// cached player entry.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, playerKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	key := playerKeyPrefix + "id:" + strconv.FormatInt(playerID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, items []player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.next.Upsert(ctx, items)
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

// RiderRepository reads riders through the cache. Upsert drops every
// cached rider entry.
type RiderRepository struct {
	next  rider.Repository
	cache *basecache.Store
}

func NewRiderRepository(next rider.Repository, cache *basecache.Store) *RiderRepository {
	return &RiderRepository{next: next, cache: cache}
}

func (r *RiderRepository) List(ctx context.Context) ([]rider.Rider, error) {
	v, err := r.cache.GetOrLoad(ctx, riderKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]rider.Rider(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rider.Rider)
	return append([]rider.Rider(nil), items...), nil
}

func (r *RiderRepository) GetByID(ctx context.Context, riderID int64) (rider.Rider, bool, error) {
	key := riderKeyPrefix + "id:" + strconv.FormatInt(riderID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, riderID)
		if err != nil {
			return nil, err
		}
		return cachedRiderByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return rider.Rider{}, false, err
	}

	cached, _ := v.(cachedRiderByID)
	return cached.value, cached.exists, nil
}

func (r *RiderRepository) Upsert(ctx context.Context, items []rider.Rider) error {
	defer r.cache.DeletePrefix(ctx, riderKeyPrefix)
	return r.next.Upsert(ctx, items)
}

type cachedRiderByID struct {
	value  rider.Rider
	exists bool
}

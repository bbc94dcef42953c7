package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/porra/internal/domain/vote"
)

type voteKey struct {
	playerID int64
	raceID   int64
}

type VoteRepository struct {
	mu    sync.RWMutex
	items map[voteKey]vote.Vote
}

func NewVoteRepository(items []vote.Vote) *VoteRepository {
	index := make(map[voteKey]vote.Vote, len(items))
	for _, item := range items {
		index[voteKey{playerID: item.PlayerID, raceID: item.RaceID}] = item
	}
	return &VoteRepository{items: index}
}

func (r *VoteRepository) List(_ context.Context) ([]vote.Vote, error) {
	return r.filter(func(vote.Vote) bool { return true }), nil
}

func (r *VoteRepository) ListByPlayer(_ context.Context, playerID int64) ([]vote.Vote, error) {
	return r.filter(func(v vote.Vote) bool { return v.PlayerID == playerID }), nil
}

func (r *VoteRepository) ListByRace(_ context.Context, raceID int64) ([]vote.Vote, error) {
	return r.filter(func(v vote.Vote) bool { return v.RaceID == raceID }), nil
}

func (r *VoteRepository) Insert(_ context.Context, item vote.Vote) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey{playerID: item.PlayerID, raceID: item.RaceID}
	if _, exists := r.items[key]; exists {
		return vote.ErrConcurrentChange
	}
	r.items[key] = item
	return nil
}

func (r *VoteRepository) Update(_ context.Context, item vote.Vote) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey{playerID: item.PlayerID, raceID: item.RaceID}
	current, exists := r.items[key]
	if !exists || current.IsLocked {
		return vote.ErrConcurrentChange
	}
	r.items[key] = item
	return nil
}

// filter returns matches ordered by race, then player.
func (r *VoteRepository) filter(keep func(vote.Vote) bool) []vote.Vote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vote.Vote, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RaceID != out[j].RaceID {
			return out[i].RaceID < out[j].RaceID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func (r *VoteRepository) hasRace(raceID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for key := range r.items {
		if key.raceID == raceID {
			return true
		}
	}
	return false
}

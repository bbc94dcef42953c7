package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/rider"
	basecache "github.com/riskibarqy/porra/internal/platform/cache"
	playermock "github.com/riskibarqy/porra/internal/mocks/domain/player"
	ridermock "github.com/riskibarqy/porra/internal/mocks/domain/rider"
	"github.com/stretchr/testify/mock"
)

func TestPlayerRepository_ListIsCachedUntilUpsert(t *testing.T) {
	ctx := t.Context()
	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	first := []player.Player{{ID: 1, Name: "ANITA"}}
	second := []player.Player{{ID: 1, Name: "ANITA"}, {ID: 2, Name: "BERTO"}}
	next.On("List", mock.Anything).Return(first, nil).Once()

	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("unexpected players: got=%d want=1", len(items))
		}
	}

	next.On("Upsert", mock.Anything, second).Return(nil).Once()
	next.On("List", mock.Anything).Return(second, nil).Once()
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert players: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list players after upsert: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected players after upsert: got=%d want=2", len(items))
	}
}

func TestPlayerRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := t.Context()
	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	next.On("List", mock.Anything).Return(nil, player.ErrCollectionMissing).Once()
	next.On("List", mock.Anything).Return([]player.Player{{ID: 1, Name: "ANITA"}}, nil).Once()

	if _, err := repo.List(ctx); !errors.Is(err, player.ErrCollectionMissing) {
		t.Fatalf("expected collection missing, got %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected second list: items=%d err=%v", len(items), err)
	}
}

func TestRiderRepository_GetByIDCachesMisses(t *testing.T) {
	ctx := t.Context()
	next := ridermock.NewRepository(t)
	repo := NewRiderRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByID", mock.Anything, int64(99)).Return(rider.Rider{}, false, nil).Once()
	next.On("GetByID", mock.Anything, int64(1)).Return(rider.Rider{ID: 1, Name: "Marc Marquez", Number: 93}, true, nil).Once()

	for i := 0; i < 2; i++ {
		if _, exists, err := repo.GetByID(ctx, 99); err != nil || exists {
			t.Fatalf("expected cached miss, exists=%v err=%v", exists, err)
		}
	}
	for i := 0; i < 2; i++ {
		item, exists, err := repo.GetByID(ctx, 1)
		if err != nil || !exists {
			t.Fatalf("expected rider 1, exists=%v err=%v", exists, err)
		}
		if item.Number != 93 {
			t.Fatalf("unexpected rider number: got=%d want=93", item.Number)
		}
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/standings"
	"github.com/riskibarqy/porra/internal/domain/vote"
	"github.com/sourcegraph/conc/pool"
)

// Dataset is one consistent read of all five collections.
type Dataset struct {
	Players []player.Player
	Riders  []rider.Rider
	Races   []race.Race
	Votes   []vote.Vote
	Points  []point.Point
}

// Overview is the derived state served to every read view.
type Overview struct {
	Dataset
	Window       race.Window
	HasNextRace  bool
	CalendarYear int
	Snapshot     standings.Snapshot
}

// StatsService recomputes derived stats from scratch on every call.
type StatsService struct {
	playerRepo player.Repository
	riderRepo  rider.Repository
	raceRepo   race.Repository
	voteRepo   vote.Repository
	pointRepo  point.Repository
	now        func() time.Time
}

func NewStatsService(
	playerRepo player.Repository,
	riderRepo rider.Repository,
	raceRepo race.Repository,
	voteRepo vote.Repository,
	pointRepo point.Repository,
) *StatsService {
	return &StatsService{
		playerRepo: playerRepo,
		riderRepo:  riderRepo,
		raceRepo:   raceRepo,
		voteRepo:   voteRepo,
		pointRepo:  pointRepo,
		now:        time.Now,
	}
}

// Load reads the collections in parallel. Players and riders are sorted by
// id and races by date.
func (s *StatsService) Load(ctx context.Context) (Dataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Load")
	defer span.End()

	var out Dataset
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return mandatoryErr("list players", err, player.ErrCollectionMissing)
		}
		out.Players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.riderRepo.List(ctx)
		if err != nil {
			return mandatoryErr("list riders", err, rider.ErrCollectionMissing)
		}
		out.Riders = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.raceRepo.List(ctx)
		if err != nil {
			return storageErr("list races", err)
		}
		out.Races = race.SortByDate(items)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.voteRepo.List(ctx)
		if err != nil {
			return storageErr("list votes", err)
		}
		out.Votes = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.pointRepo.List(ctx)
		if err != nil {
			return storageErr("list points", err)
		}
		out.Points = items
		return nil
	})
	if err := p.Wait(); err != nil {
		recordSpanError(span, err)
		return Dataset{}, err
	}

	if len(out.Players) == 0 {
		return Dataset{}, fmt.Errorf("%w: players collection is empty", ErrBootstrapRequired)
	}
	sort.SliceStable(out.Players, func(i, j int) bool { return out.Players[i].ID < out.Players[j].ID })
	sort.SliceStable(out.Riders, func(i, j int) bool { return out.Riders[i].ID < out.Riders[j].ID })
	return out, nil
}

func (s *StatsService) Overview(ctx context.Context) (Overview, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return Overview{}, err
	}

	out := Overview{Dataset: data}
	out.Window, out.HasNextRace = race.CurrentWindow(data.Races, s.now())
	if len(data.Races) > 0 {
		out.CalendarYear = data.Races[0].RaceDate.UTC().Year()
	}

	var nextRaceID int64
	if out.HasNextRace {
		nextRaceID = out.Window.Race.ID
	}
	out.Snapshot = standings.Build(standings.Input{
		Players:    data.Players,
		Votes:      data.Votes,
		Points:     data.Points,
		NextRaceID: nextRaceID,
	})
	return out, nil
}

// PlayerHistory returns the player's vote histogram, most picked rider first.
func (s *StatsService) PlayerHistory(ctx context.Context, playerID int64) (player.Player, []standings.HistoryEntry, Overview, error) {
	if playerID <= 0 {
		return player.Player{}, nil, Overview{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	view, err := s.Overview(ctx)
	if err != nil {
		return player.Player{}, nil, Overview{}, err
	}
	for _, item := range view.Players {
		if item.ID == playerID {
			return item, view.Snapshot.History(playerID), view, nil
		}
	}
	return player.Player{}, nil, Overview{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
}

func mandatoryErr(op string, err, missing error) error {
	if errors.Is(err, missing) {
		return fmt.Errorf("%w: %s: %w", ErrBootstrapRequired, op, err)
	}
	return storageErr(op, err)
}

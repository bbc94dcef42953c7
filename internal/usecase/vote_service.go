package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/vote"
	"github.com/riskibarqy/porra/internal/platform/lock"
	"github.com/riskibarqy/porra/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultMaxVotesPerRider = 3

type CastVoteInput struct {
	PlayerID int64
	RiderID  int64
}

type VoteServiceConfig struct {
	MaxVotesPerRider int
}

// VoteService records picks for the next race.
type VoteService struct {
	cfg        VoteServiceConfig
	raceRepo   race.Repository
	playerRepo player.Repository
	riderRepo  rider.Repository
	voteRepo   vote.Repository
	locks      *lock.Keyed
	metrics    Metrics
	logger     *logging.Logger
	now        func() time.Time
}

func NewVoteService(
	cfg VoteServiceConfig,
	raceRepo race.Repository,
	playerRepo player.Repository,
	riderRepo rider.Repository,
	voteRepo vote.Repository,
	metrics Metrics,
	logger *logging.Logger,
) *VoteService {
	if cfg.MaxVotesPerRider <= 0 {
		cfg.MaxVotesPerRider = DefaultMaxVotesPerRider
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &VoteService{
		cfg:        cfg,
		raceRepo:   raceRepo,
		playerRepo: playerRepo,
		riderRepo:  riderRepo,
		voteRepo:   voteRepo,
		locks:      lock.NewKeyed(),
		metrics:    metricsOrNop(metrics),
		logger:     logger,
		now:        time.Now,
	}
}

// Cast applies a player's pick to the next race. Every failure is reported
// through the outcome; no error is returned.
func (s *VoteService) Cast(ctx context.Context, input CastVoteInput) Outcome {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Cast",
		attribute.Int64("player_id", input.PlayerID),
		attribute.Int64("rider_id", input.RiderID),
	)
	defer span.End()

	out := s.cast(ctx, input)
	recordSpanError(span, out.Err)

	result := voteResult(out)
	s.metrics.VoteCast(result)
	if out.Success {
		s.logger.InfoContext(ctx, "vote cast", "player_id", input.PlayerID, "rider_id", input.RiderID, "message", out.Message)
	} else {
		s.logger.WarnContext(ctx, "vote declined", "player_id", input.PlayerID, "rider_id", input.RiderID, "result", result, "error", out.Err)
	}
	return out
}

func (s *VoteService) cast(ctx context.Context, input CastVoteInput) Outcome {
	races, err := s.raceRepo.List(ctx)
	if err != nil {
		return declined(storageErr("list races", err))
	}
	window, ok := race.CurrentWindow(races, s.now())
	if !ok {
		return declined(ErrNoNextRace)
	}
	if !window.Open {
		return declined(ErrVotingClosed)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return declined(storageErr("get player", err))
	} else if !exists {
		return declined(ErrPlayerNotFound)
	}
	selected, exists, err := s.riderRepo.GetByID(ctx, input.RiderID)
	if err != nil {
		return declined(storageErr("get rider", err))
	}
	if !exists {
		return declined(ErrRiderNotFound)
	}

	raceID := window.Race.ID
	unlock := s.locks.Lock(strconv.FormatInt(input.PlayerID, 10) + ":" + strconv.FormatInt(raceID, 10))
	defer unlock()

	history, err := s.voteRepo.ListByPlayer(ctx, input.PlayerID)
	if err != nil {
		return declined(storageErr("list player votes", err))
	}
	current, hasCurrent := vote.FindForRace(history, input.PlayerID, raceID)
	state := vote.StateOf(current, hasCurrent)

	count := vote.CountForRider(history, input.PlayerID, input.RiderID)
	if count >= s.cfg.MaxVotesPerRider && !state.Picks(input.RiderID) {
		return declined(fmt.Errorf("%w: already voted for %s %d times", ErrRiderCapExceeded, selected.Name, s.cfg.MaxVotesPerRider))
	}

	transition, err := state.Cast(input.RiderID)
	if err != nil {
		return declined(err)
	}

	record := transition.Record(input.PlayerID, raceID)
	switch transition.Mutation {
	case vote.MutationNone:
		return succeeded("vote reconfirmed")
	case vote.MutationInsert:
		err = s.voteRepo.Insert(ctx, record)
	case vote.MutationUpdate:
		err = s.voteRepo.Update(ctx, record)
	}
	if errors.Is(err, vote.ErrConcurrentChange) {
		return declined(fmt.Errorf("%w: vote for race %d changed concurrently", ErrConflict, raceID))
	}
	if err != nil {
		return declined(storageErr("save vote", err))
	}

	return succeeded("vote recorded")
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
}

func voteResult(out Outcome) string {
	switch {
	case out.Success:
		return "accepted"
	case errors.Is(out.Err, ErrDependencyUnavailable):
		return "error"
	case errors.Is(out.Err, ErrConflict):
		return "conflict"
	default:
		return "declined"
	}
}

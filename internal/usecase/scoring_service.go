package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/vote"
	"github.com/riskibarqy/porra/internal/platform/lock"
	"github.com/riskibarqy/porra/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type AwardSessionInput struct {
	ExternalEventID string
	Session         ExternalSession
	Classification  []ClassificationEntry
}

// ScoringService credits points to players whose pick scored in a session.
// Each (race, session) is scored at most once.
type ScoringService struct {
	raceRepo  race.Repository
	riderRepo rider.Repository
	voteRepo  vote.Repository
	pointRepo point.Repository
	locks     *lock.Keyed
	metrics   Metrics
	logger    *logging.Logger
}

func NewScoringService(
	raceRepo race.Repository,
	riderRepo rider.Repository,
	voteRepo vote.Repository,
	pointRepo point.Repository,
	metrics Metrics,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		raceRepo:  raceRepo,
		riderRepo: riderRepo,
		voteRepo:  voteRepo,
		pointRepo: pointRepo,
		locks:     lock.NewKeyed(),
		metrics:   metricsOrNop(metrics),
		logger:    logger,
	}
}

func (s *ScoringService) AwardSession(ctx context.Context, input AwardSessionInput) ScoringOutcome {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.AwardSession",
		attribute.String("event_id", input.ExternalEventID),
		attribute.String("session_id", input.Session.ID),
	)
	defer span.End()

	out := s.award(ctx, input)
	recordSpanError(span, out.Err)

	result := scoringResult(out)
	s.metrics.SessionScored(result, out.Awarded)
	if out.Err != nil && !errors.Is(out.Err, ErrAlreadyScored) {
		s.logger.WarnContext(ctx, "session scoring declined",
			"event_id", input.ExternalEventID,
			"session_id", input.Session.ID,
			"error", out.Err,
		)
	} else {
		s.logger.InfoContext(ctx, "session scoring finished",
			"race_id", out.RaceID,
			"session_id", input.Session.ID,
			"result", result,
			"awarded", out.Awarded,
		)
	}
	return out
}

func (s *ScoringService) award(ctx context.Context, input AwardSessionInput) ScoringOutcome {
	sessionID := strings.TrimSpace(input.Session.ID)
	if sessionID == "" {
		return ScoringOutcome{Outcome: declined(fmt.Errorf("%w: session id is required", ErrInvalidInput))}
	}

	target, exists, err := s.raceRepo.GetByExternalEventID(ctx, strings.TrimSpace(input.ExternalEventID))
	if err != nil {
		return ScoringOutcome{Outcome: declined(storageErr("get race", err))}
	}
	if !exists {
		return ScoringOutcome{Outcome: declined(ErrRaceNotFound)}
	}
	out := ScoringOutcome{RaceID: target.ID}

	unlock := s.locks.Lock(strconv.FormatInt(target.ID, 10) + ":" + sessionID)
	defer unlock()

	scored, err := s.pointRepo.ExistsForSession(ctx, target.ID, sessionID)
	if err != nil {
		out.Outcome = declined(storageErr("check session points", err))
		return out
	}
	if scored {
		out.Outcome = declined(ErrAlreadyScored)
		return out
	}

	votes, err := s.voteRepo.ListByRace(ctx, target.ID)
	if err != nil {
		out.Outcome = declined(storageErr("list race votes", err))
		return out
	}
	if len(votes) == 0 {
		out.Outcome = succeeded("no votes for this race")
		return out
	}

	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		out.Outcome = declined(storageErr("list riders", err))
		return out
	}

	items := buildAwards(target.ID, sessionID, point.SessionName(input.Session.Type, input.Session.Number), votes, riders, input.Classification)
	if len(items) == 0 {
		out.Outcome = succeeded("no one scored in this session")
		return out
	}

	if err := s.pointRepo.InsertBatch(ctx, items); err != nil {
		if errors.Is(err, point.ErrSessionAlreadyScored) {
			out.Outcome = declined(ErrAlreadyScored)
			return out
		}
		out.Outcome = declined(storageErr("insert points", err))
		return out
	}

	out.Awarded = len(items)
	out.Outcome = succeeded(fmt.Sprintf("awarded %d points rows", len(items)))
	return out
}

// buildAwards maps classification rows to riders by racing number and emits
// one point per vote whose rider scored.
func buildAwards(raceID int64, sessionID, sessionName string, votes []vote.Vote, riders []rider.Rider, classification []ClassificationEntry) []point.Point {
	byNumber := rider.IndexByNumber(riders)

	scoredByRider := make(map[int64]int, len(classification))
	for _, entry := range classification {
		riderID, ok := byNumber[entry.RiderNumber]
		if !ok {
			continue
		}
		value := int(math.Round(entry.Points))
		if value <= 0 {
			continue
		}
		scoredByRider[riderID] = value
	}

	out := make([]point.Point, 0, len(votes))
	for _, v := range votes {
		value, ok := scoredByRider[v.RiderID]
		if !ok {
			continue
		}
		out = append(out, point.Point{
			PlayerID:    v.PlayerID,
			RaceID:      raceID,
			RiderID:     v.RiderID,
			SessionID:   sessionID,
			SessionName: sessionName,
			Points:      value,
		})
	}
	return out
}

func scoringResult(out ScoringOutcome) string {
	switch {
	case out.Awarded > 0:
		return "awarded"
	case out.Success:
		return "empty"
	case errors.Is(out.Err, ErrAlreadyScored):
		return "already_scored"
	case errors.Is(out.Err, ErrDependencyUnavailable):
		return "error"
	default:
		return "declined"
	}
}

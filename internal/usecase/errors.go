package usecase

import (
	"errors"

	"github.com/riskibarqy/porra/internal/domain/vote"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrConflict              = errors.New("conflicting change")
)

// Vote declines.
var (
	ErrNoNextRace       = errors.New("no upcoming race")
	ErrVotingClosed     = errors.New("voting is closed for this race")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrRiderNotFound    = errors.New("rider not found")
	ErrRiderCapExceeded = errors.New("rider vote limit reached")
	ErrVoteLocked       = vote.ErrLocked
)

// Scoring declines.
var (
	ErrRaceNotFound  = errors.New("race not found")
	ErrAlreadyScored = errors.New("session already scored")
)

// ErrBootstrapRequired means the mandatory player or rider collections are
// missing or empty and the default roster has to be seeded first.
var ErrBootstrapRequired = errors.New("data store needs seeding")

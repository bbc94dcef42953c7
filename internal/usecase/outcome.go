package usecase

// Outcome reports a mutation attempt. Declines and storage failures are
// carried in Err (match with errors.Is) instead of being returned.
type Outcome struct {
	Success bool
	Message string
	Err     error
}

func succeeded(message string) Outcome {
	return Outcome{Success: true, Message: message}
}

func declined(err error) Outcome {
	return Outcome{Message: err.Error(), Err: err}
}

// ScoringOutcome extends Outcome with the number of points rows written.
type ScoringOutcome struct {
	Outcome
	RaceID  int64
	Awarded int
}

// Metrics receives business counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	VoteCast(result string)
	SessionScored(result string, awarded int)
}

type nopMetrics struct{}

func (nopMetrics) VoteCast(string)           {}
func (nopMetrics) SessionScored(string, int) {}

func metricsOrNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

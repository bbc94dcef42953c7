package point

import "context"

// Repository describes point persistence needs from use cases.
//
// InsertBatch writes every point or none, and fails with
// ErrSessionAlreadyScored if the batch's (race, session) already has points.
type Repository interface {
	List(ctx context.Context) ([]Point, error)
	ExistsForSession(ctx context.Context, raceID int64, sessionID string) (bool, error)
	InsertBatch(ctx context.Context, items []Point) error
}

package vote

import "context"

// Repository describes vote persistence needs from use cases.
//
// Insert fails with ErrConcurrentChange when a vote for the same
// (player, race) already exists. Update only applies to a vote that is still
// unlocked and fails with ErrConcurrentChange otherwise.
type Repository interface {
	List(ctx context.Context) ([]Vote, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Vote, error)
	ListByRace(ctx context.Context, raceID int64) ([]Vote, error)
	Insert(ctx context.Context, item Vote) error
	Update(ctx context.Context, item Vote) error
}

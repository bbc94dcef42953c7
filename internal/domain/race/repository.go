package race

import "context"

// Repository describes race persistence needs from use cases.
// A store without a races collection reports an empty list.
type Repository interface {
	List(ctx context.Context) ([]Race, error)
	GetByExternalEventID(ctx context.Context, externalEventID string) (Race, bool, error)
	// Replace makes items the stored calendar, keeping races that votes or
	// points still reference.
	Replace(ctx context.Context, items []Race) error
}

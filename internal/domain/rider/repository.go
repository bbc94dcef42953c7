package rider

import "context"

// Repository describes rider persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Rider, error)
	GetByID(ctx context.Context, riderID int64) (Rider, bool, error)
	Upsert(ctx context.Context, items []Rider) error
}

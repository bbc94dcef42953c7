package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/porra/internal/domain/rider"
	qb "github.com/riskibarqy/porra/internal/platform/querybuilder"
)

var riderColumns = []string{"id", "name", "number", "team", "image_url"}

type RiderRepository struct {
	db *sqlx.DB
}

func NewRiderRepository(db *sqlx.DB) *RiderRepository {
	return &RiderRepository{db: db}
}

func (r *RiderRepository) List(ctx context.Context) ([]rider.Rider, error) {
	query, args, err := qb.Select(riderColumns...).From("riders").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select riders query: %w", err)
	}

	var rows []riderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("%w: %w", rider.ErrCollectionMissing, err)
		}
		return nil, fmt.Errorf("select riders: %w", err)
	}

	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RiderRepository) GetByID(ctx context.Context, riderID int64) (rider.Rider, bool, error) {
	query, args, err := qb.Select(riderColumns...).From("riders").Where(qb.Eq("id", riderID)).ToSQL()
	if err != nil {
		return rider.Rider{}, false, fmt.Errorf("build get rider query: %w", err)
	}

	var row riderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rider.Rider{}, false, nil
		}
		if isUndefinedTable(err) {
			return rider.Rider{}, false, fmt.Errorf("%w: %w", rider.ErrCollectionMissing, err)
		}
		return rider.Rider{}, false, fmt.Errorf("get rider by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RiderRepository) Upsert(ctx context.Context, items []rider.Rider) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]riderTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, riderTableModel{
			ID:       item.ID,
			Name:     item.Name,
			Number:   item.Number,
			Team:     item.Team,
			ImageURL: item.ImageURL,
		})
	}
	query, args, err := qb.InsertModels("riders", rows, `ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    number = EXCLUDED.number,
    team = EXCLUDED.team,
    image_url = EXCLUDED.image_url`)
	if err != nil {
		return fmt.Errorf("build upsert riders query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert riders: %w", err)
	}
	return nil
}

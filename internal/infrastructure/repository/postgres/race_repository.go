package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/porra/internal/domain/race"
	qb "github.com/riskibarqy/porra/internal/platform/querybuilder"
)

var raceColumns = []string{"id", "name", "country", "circuit", "dates", "flag", "race_date", "status", "api_event_id"}

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

// List returns races by date. A missing races table reads as empty.
func (r *RaceRepository) List(ctx context.Context) ([]race.Race, error) {
	query, args, err := qb.Select(raceColumns...).From("races").OrderBy("race_date", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isUndefinedTable(err) {
			return []race.Race{}, nil
		}
		return nil, fmt.Errorf("select races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RaceRepository) GetByExternalEventID(ctx context.Context, externalEventID string) (race.Race, bool, error) {
	if externalEventID == "" {
		return race.Race{}, false, nil
	}
	query, args, err := qb.Select(raceColumns...).From("races").
		Where(qb.Eq("api_event_id", externalEventID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return race.Race{}, false, fmt.Errorf("build get race by event query: %w", err)
	}

	var row raceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) || isUndefinedTable(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("get race by event id: %w", err)
	}
	return row.toDomain(), true, nil
}

// Replace stores items as the whole calendar in one transaction. Event ids
// are cleared before the upsert so a shifted calendar can hand them to other
// rows, and races left out of items are deleted unless votes or points still
// reference them.
func (r *RaceRepository) Replace(ctx context.Context, items []race.Race) error {
	if len(items) == 0 {
		return nil
	}
	stmts, err := replaceRacesStatements(items)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace races: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			return fmt.Errorf("%s: %w", stmt.op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace races: %w", err)
	}
	return nil
}

type statement struct {
	op    string
	query string
	args  []any
}

func replaceRacesStatements(items []race.Race) ([]statement, error) {
	rows := make([]raceTableModel, 0, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		rows = append(rows, raceRow(item))
		ids = append(ids, item.ID)
	}
	upsert, args, err := qb.InsertModels("races", rows, `ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    circuit = EXCLUDED.circuit,
    dates = EXCLUDED.dates,
    flag = EXCLUDED.flag,
    race_date = EXCLUDED.race_date,
    status = EXCLUDED.status,
    api_event_id = EXCLUDED.api_event_id,
    updated_at = NOW()`)
	if err != nil {
		return nil, fmt.Errorf("build upsert races query: %w", err)
	}

	return []statement{
		{
			op:    "clear race event ids",
			query: `UPDATE races SET api_event_id = NULL WHERE api_event_id IS NOT NULL`,
		},
		{
			op:    "upsert races",
			query: upsert,
			args:  args,
		},
		{
			op:    "delete dropped races",
			query: `DELETE FROM races r
WHERE NOT (r.id = ANY($1))
  AND NOT EXISTS (SELECT 1 FROM votes v WHERE v.race_id = r.id)
  AND NOT EXISTS (SELECT 1 FROM points p WHERE p.race_id = r.id)`,
			args: []any{pq.Array(ids)},
		},
	}, nil
}

package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/porra/internal/domain/point"
	qb "github.com/riskibarqy/porra/internal/platform/querybuilder"
)

var pointColumns = []string{"id", "player_id", "race_id", "rider_id", "session_id", "session_name", "points"}

type PointRepository struct {
	db *sqlx.DB
}

func NewPointRepository(db *sqlx.DB) *PointRepository {
	return &PointRepository{db: db}
}

func (r *PointRepository) List(ctx context.Context) ([]point.Point, error) {
	query, args, err := qb.Select(pointColumns...).From("points").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select points query: %w", err)
	}

	var rows []pointTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isUndefinedTable(err) {
			return []point.Point{}, nil
		}
		return nil, fmt.Errorf("select points: %w", err)
	}

	out := make([]point.Point, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PointRepository) ExistsForSession(ctx context.Context, raceID int64, sessionID string) (bool, error) {
	exists, err := sessionScored(ctx, r.db, raceID, sessionID)
	if err != nil && isUndefinedTable(err) {
		return false, nil
	}
	return exists, err
}

// InsertBatch holds a transaction-scoped advisory lock on (race, session)
// while it re-checks and inserts, so concurrent scorers cannot both write.
func (r *PointRepository) InsertBatch(ctx context.Context, items []point.Point) error {
	if err := point.ValidateBatch(items); err != nil {
		return err
	}
	raceID, sessionID := items[0].RaceID, items[0].SessionID

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx insert points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockKey := "points:" + strconv.FormatInt(raceID, 10) + ":" + sessionID
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("lock session %s: %w", sessionID, err)
	}

	scored, err := sessionScored(ctx, tx, raceID, sessionID)
	if err != nil {
		return err
	}
	if scored {
		return point.ErrSessionAlreadyScored
	}

	rows := make([]pointInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, pointInsertModel{
			PlayerID:    item.PlayerID,
			RaceID:      item.RaceID,
			RiderID:     item.RiderID,
			SessionID:   item.SessionID,
			SessionName: item.SessionName,
			Points:      item.Points,
		})
	}
	query, args, err := qb.InsertModels("points", rows, "")
	if err != nil {
		return fmt.Errorf("build insert points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert points: %w", err)
	}
	return nil
}

func sessionScored(ctx context.Context, q sqlx.QueryerContext, raceID int64, sessionID string) (bool, error) {
	query, args, err := qb.Select("1").From("points").
		Where(qb.Eq("race_id", raceID), qb.Eq("session_id", sessionID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build session scored query: %w", err)
	}

	var found int
	if err := sqlx.GetContext(ctx, q, &found, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check session scored: %w", err)
	}
	return true, nil
}

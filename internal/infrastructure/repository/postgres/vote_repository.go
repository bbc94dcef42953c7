package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/porra/internal/domain/vote"
	qb "github.com/riskibarqy/porra/internal/platform/querybuilder"
)

var voteColumns = []string{"player_id", "race_id", "rider_id", "is_locked"}

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) List(ctx context.Context) ([]vote.Vote, error) {
	return r.selectVotes(ctx)
}

func (r *VoteRepository) ListByPlayer(ctx context.Context, playerID int64) ([]vote.Vote, error) {
	return r.selectVotes(ctx, qb.Eq("player_id", playerID))
}

func (r *VoteRepository) ListByRace(ctx context.Context, raceID int64) ([]vote.Vote, error) {
	return r.selectVotes(ctx, qb.Eq("race_id", raceID))
}

// Insert only creates a vote when no row exists for (player, race).
func (r *VoteRepository) Insert(ctx context.Context, item vote.Vote) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModels("votes", []voteTableModel{{
		PlayerID: item.PlayerID,
		RaceID:   item.RaceID,
		RiderID:  item.RiderID,
		IsLocked: item.IsLocked,
	}}, `ON CONFLICT (player_id, race_id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build insert vote query: %w", err)
	}
	return r.execExpectingRow(ctx, "insert vote", query, args)
}

// Update rewrites a vote only while it is still unlocked.
func (r *VoteRepository) Update(ctx context.Context, item vote.Vote) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.Update("votes").
		Set("rider_id", item.RiderID).
		Set("is_locked", item.IsLocked).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("player_id", item.PlayerID),
			qb.Eq("race_id", item.RaceID),
			qb.Expr("is_locked = ?", false),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update vote query: %w", err)
	}
	return r.execExpectingRow(ctx, "update vote", query, args)
}

func (r *VoteRepository) execExpectingRow(ctx context.Context, op, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return vote.ErrConcurrentChange
	}
	return nil
}

func (r *VoteRepository) selectVotes(ctx context.Context, conditions ...qb.Condition) ([]vote.Vote, error) {
	query, args, err := qb.Select(voteColumns...).From("votes").
		Where(conditions...).
		OrderBy("race_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select votes query: %w", err)
	}

	var rows []voteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isUndefinedTable(err) {
			return []vote.Vote{}, nil
		}
		return nil, fmt.Errorf("select votes: %w", err)
	}

	out := make([]vote.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

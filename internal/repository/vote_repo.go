package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// VoteRepo owns the vote bookkeeping. One row per (pair, identity); rows are
// never deleted, retraction stores value 0.
type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// CastVote applies one vote atomically and returns the resulting stored value
// and rating snapshot. The toggle rule lives in the upsert itself: re-casting
// the identical non-zero value retracts it, anything else overwrites. Because
// the decision and the write are one statement on the row's primary key,
// concurrent casts from the same identity serialize on the row lock and
// cannot lose updates.
func (r *VoteRepo) CastVote(ctx context.Context, key pairkey.Key, identity string, value int) (stored int, snapshot model.RatingSnapshot, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, model.RatingSnapshot{}, err
	}
	defer tx.Rollback(ctx)

	// The pair is created lazily on first vote.
	_, err = tx.Exec(ctx, `
		INSERT INTO wrong_quotes (quote_id, author_id) VALUES ($1, $2)
		ON CONFLICT (quote_id, author_id) DO NOTHING`,
		key.QuoteID, key.AuthorID)
	if err != nil {
		return 0, model.RatingSnapshot{}, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO votes (quote_id, author_id, identity, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (quote_id, author_id, identity) DO UPDATE
		SET value = CASE
			WHEN votes.value = EXCLUDED.value AND EXCLUDED.value <> 0 THEN 0
			ELSE EXCLUDED.value
		END,
		updated_at = NOW()
		RETURNING value`,
		key.QuoteID, key.AuthorID, identity, value).Scan(&stored)
	if err != nil {
		return 0, model.RatingSnapshot{}, err
	}

	var sum int64
	var count int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(value), 0), COUNT(*)
		FROM votes
		WHERE quote_id = $1 AND author_id = $2`,
		key.QuoteID, key.AuthorID).Scan(&sum, &count)
	if err != nil {
		return 0, model.RatingSnapshot{}, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE wrong_quotes
		SET rating = $1, vote_count = $2, last_voted_at = NOW()
		WHERE quote_id = $3 AND author_id = $4`,
		sum, count, key.QuoteID, key.AuthorID)
	if err != nil {
		return 0, model.RatingSnapshot{}, err
	}

	// Wake the rating worker so drifted cache columns get reconciled.
	_, err = tx.Exec(ctx, `SELECT pg_notify('rating_changes', $1)`, key.String())
	if err != nil {
		return 0, model.RatingSnapshot{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, model.RatingSnapshot{}, err
	}
	return stored, model.NewRatingSnapshot(sum, count), nil
}

// GetVote returns the identity's current vote on a pair, 0 when none exists.
func (r *VoteRepo) GetVote(ctx context.Context, key pairkey.Key, identity string) (int, error) {
	var value int
	err := r.pool.QueryRow(ctx, `
		SELECT value FROM votes
		WHERE quote_id = $1 AND author_id = $2 AND identity = $3`,
		key.QuoteID, key.AuthorID, identity).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

// GetRating derives the rating snapshot of a pair from its votes. A pair
// without any vote rows (or not yet registered) is simply unrated.
func (r *VoteRepo) GetRating(ctx context.Context, key pairkey.Key) (model.RatingSnapshot, error) {
	var sum int64
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(value), 0), COUNT(*)
		FROM votes
		WHERE quote_id = $1 AND author_id = $2`,
		key.QuoteID, key.AuthorID).Scan(&sum, &count)
	if err != nil {
		return model.RatingSnapshot{}, err
	}
	return model.NewRatingSnapshot(sum, count), nil
}

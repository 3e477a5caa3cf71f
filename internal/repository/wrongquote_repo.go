package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// WrongQuoteRepo is the registry of every (quote, author) pairing ever served
// or voted on. Records are created lazily on first reference.
type WrongQuoteRepo struct {
	pool *pgxpool.Pool
}

func NewWrongQuoteRepo(pool *pgxpool.Pool) *WrongQuoteRepo {
	return &WrongQuoteRepo{pool: pool}
}

func pairIDString(quoteID, authorID uint64) string {
	return pairkey.Encode(quoteID, authorID)
}

// GetOrCreate registers a pairing if it is new. The unique-constraint upsert
// makes concurrent first-time creation of the same pair resolve to the single
// existing row instead of racing into duplicates.
func (r *WrongQuoteRepo) GetOrCreate(ctx context.Context, key pairkey.Key) (*model.WrongQuote, error) {
	// Reject pairs whose quote or author does not exist before inserting,
	// so a decoded-but-dangling external id surfaces as NotFound.
	var quoteExists, authorExists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM quotes WHERE id = $1),
		       EXISTS (SELECT 1 FROM authors WHERE id = $2)`,
		key.QuoteID, key.AuthorID).Scan(&quoteExists, &authorExists)
	if err != nil {
		return nil, err
	}
	if !quoteExists || !authorExists {
		return nil, model.ErrNotFound
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO wrong_quotes (quote_id, author_id) VALUES ($1, $2)
		ON CONFLICT (quote_id, author_id) DO NOTHING`,
		key.QuoteID, key.AuthorID)
	if err != nil {
		return nil, err
	}

	return r.Find(ctx, key)
}

// Find returns the registered pairing, or model.ErrNotFound.
func (r *WrongQuoteRepo) Find(ctx context.Context, key pairkey.Key) (*model.WrongQuote, error) {
	var wq model.WrongQuote
	var lastVoted *time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT quote_id, author_id, rating, vote_count, created_at, last_voted_at
		FROM wrong_quotes
		WHERE quote_id = $1 AND author_id = $2`,
		key.QuoteID, key.AuthorID).
		Scan(&wq.QuoteID, &wq.AuthorID, &wq.Rating, &wq.VoteCount, &wq.CreatedAt, &lastVoted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if lastVoted != nil {
		wq.LastVotedAt = *lastVoted
	}
	return &wq, nil
}

// ListCandidates returns the slim candidate set for one rating filter. The
// smart filter takes the whole registry; its weighting is in-memory math.
func (r *WrongQuoteRepo) ListCandidates(ctx context.Context, filter model.Filter) ([]model.Candidate, error) {
	query := `SELECT quote_id, author_id, rating FROM wrong_quotes`
	switch filter {
	case model.FilterRated:
		query += ` WHERE rating <> 0`
	case model.FilterUnrated:
		query += ` WHERE rating = 0`
	case model.FilterWitzig:
		query += ` WHERE rating > 0`
	case model.FilterNWitzig:
		query += ` WHERE rating < 0`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.QuoteID, &c.AuthorID, &c.Rating); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// RecalculateRating reconciles the cached rating columns of one pair against
// the votes table. Called by the rating worker after vote notifications.
func (r *WrongQuoteRepo) RecalculateRating(ctx context.Context, key pairkey.Key) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE wrong_quotes SET
			rating = COALESCE((SELECT SUM(value) FROM votes
			                   WHERE quote_id = $1 AND author_id = $2), 0),
			vote_count = (SELECT COUNT(*) FROM votes
			              WHERE quote_id = $1 AND author_id = $2)
		WHERE quote_id = $1 AND author_id = $2`,
		key.QuoteID, key.AuthorID)
	return err
}

// ChangedSince returns pairs whose votes changed after the given timestamp.
func (r *WrongQuoteRepo) ChangedSince(ctx context.Context, since time.Time) ([]model.SyncPairEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT quote_id, author_id, rating, vote_count
		FROM wrong_quotes
		WHERE last_voted_at > $1
		ORDER BY last_voted_at ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairEntries(rows)
}

// AllRated returns every pair with a non-zero rating, best first.
func (r *WrongQuoteRepo) AllRated(ctx context.Context) ([]model.SyncPairEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT quote_id, author_id, rating, vote_count
		FROM wrong_quotes
		WHERE rating <> 0
		ORDER BY rating DESC, vote_count DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairEntries(rows)
}

func scanPairEntries(rows pgx.Rows) ([]model.SyncPairEntry, error) {
	var entries []model.SyncPairEntry
	for rows.Next() {
		var quoteID, authorID uint64
		var e model.SyncPairEntry
		if err := rows.Scan(&quoteID, &authorID, &e.Rating, &e.VoteCount); err != nil {
			return nil, err
		}
		e.ID = pairIDString(quoteID, authorID)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

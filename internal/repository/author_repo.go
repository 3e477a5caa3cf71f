package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
)

// AuthorRepo computes per-author aggregates over the pairings misattributed
// to each author: how many there are, how well they land overall and which
// one is the crowd favourite.
type AuthorRepo struct {
	pool *pgxpool.Pool
}

func NewAuthorRepo(pool *pgxpool.Pool) *AuthorRepo {
	return &AuthorRepo{pool: pool}
}

// GetStats returns the aggregate stats for one author.
func (r *AuthorRepo) GetStats(ctx context.Context, authorID uint64) (*model.AuthorStats, error) {
	var stats model.AuthorStats
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.name,
		       COUNT(wq.quote_id)                             AS pair_count,
		       COUNT(wq.quote_id) FILTER (WHERE wq.rating <> 0) AS rated_pairs,
		       COALESCE(SUM(wq.rating), 0)                    AS total_rating
		FROM authors a
		LEFT JOIN wrong_quotes wq ON wq.author_id = a.id
		WHERE a.id = $1
		GROUP BY a.id, a.name`, authorID).
		Scan(&stats.AuthorID, &stats.Name, &stats.PairCount, &stats.RatedPairs, &stats.TotalRating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	stats.AvgRating = ComputeAuthorAvgPure(stats.TotalRating, stats.RatedPairs)

	var bestQuote, bestAuthor uint64
	var bestRating int64
	err = r.pool.QueryRow(ctx, `
		SELECT quote_id, author_id, rating
		FROM wrong_quotes
		WHERE author_id = $1 AND rating > 0
		ORDER BY rating DESC, vote_count DESC
		LIMIT 1`, authorID).Scan(&bestQuote, &bestAuthor, &bestRating)
	if err == nil {
		stats.BestPairID = pairIDString(bestQuote, bestAuthor)
		stats.BestRating = bestRating
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	stats.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return &stats, nil
}

// AuthorsChangedSince returns aggregate entries for authors whose pairs were
// voted on after the given timestamp.
func (r *AuthorRepo) AuthorsChangedSince(ctx context.Context, since time.Time) ([]model.SyncAuthorEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT author_id,
		       COALESCE(SUM(rating), 0)             AS total_rating,
		       COUNT(*) FILTER (WHERE rating <> 0)  AS rated_pairs
		FROM wrong_quotes
		WHERE author_id IN (
			SELECT DISTINCT author_id FROM wrong_quotes WHERE last_voted_at > $1
		)
		GROUP BY author_id
		ORDER BY author_id`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.SyncAuthorEntry
	for rows.Next() {
		var e model.SyncAuthorEntry
		var total int64
		var rated int
		if err := rows.Scan(&e.AuthorID, &total, &rated); err != nil {
			return nil, err
		}
		e.AvgRating = ComputeAuthorAvgPure(total, rated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ComputeAuthorAvgPure is a pure-logic helper for unit testing: the average
// rating over rated pairs, rounded to 2 decimal places, 0 when nothing is
// rated yet.
func ComputeAuthorAvgPure(totalRating int64, ratedPairs int) float64 {
	if ratedPairs == 0 {
		return 0
	}
	avg := float64(totalRating) / float64(ratedPairs)
	return math.Round(avg*100) / 100
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
)

// QuoteRepo is the authoritative read path for quote and author records.
// Writes happen through an out-of-scope import path.
type QuoteRepo struct {
	pool *pgxpool.Pool
}

func NewQuoteRepo(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

// GetQuote returns a single quote by id.
func (r *QuoteRepo) GetQuote(ctx context.Context, id uint64) (*model.Quote, error) {
	var q model.Quote
	err := r.pool.QueryRow(ctx,
		`SELECT id, text, real_author_id FROM quotes WHERE id = $1`, id).
		Scan(&q.ID, &q.Text, &q.RealAuthorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// GetAuthor returns a single author by id.
func (r *QuoteRepo) GetAuthor(ctx context.Context, id uint64) (*model.Author, error) {
	var a model.Author
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM authors WHERE id = $1`, id).
		Scan(&a.ID, &a.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListQuoteIDs returns every quote id. The corpus is small and read-mostly;
// the selection engine uses this to synthesize fresh pairs.
func (r *QuoteRepo) ListQuoteIDs(ctx context.Context) ([]uint64, error) {
	return r.listIDs(ctx, `SELECT id FROM quotes ORDER BY id`)
}

// ListAuthorIDs returns every author id.
func (r *QuoteRepo) ListAuthorIDs(ctx context.Context) ([]uint64, error) {
	return r.listIDs(ctx, `SELECT id FROM authors ORDER BY id`)
}

func (r *QuoteRepo) listIDs(ctx context.Context, query string) ([]uint64, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetStats returns aggregate statistics from all tables.
func (r *QuoteRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM quotes)       AS total_quotes,
			(SELECT COUNT(*) FROM authors)      AS total_authors,
			(SELECT COUNT(*) FROM wrong_quotes) AS total_pairs,
			(SELECT COUNT(*) FROM votes WHERE value <> 0) AS total_votes,
			(SELECT COUNT(DISTINCT identity) FROM votes
			 WHERE updated_at > NOW() - INTERVAL '24 hours') AS active_voters_24h`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalQuotes, &stats.TotalAuthors, &stats.TotalPairs,
		&stats.TotalVotes, &stats.ActiveVoters24h,
	)
	if err != nil {
		return nil, err
	}

	topQuery := `
		SELECT quote_id, author_id, rating, vote_count
		FROM wrong_quotes
		WHERE rating > 0
		ORDER BY rating DESC, vote_count DESC
		LIMIT 10`

	rows, err := r.pool.Query(ctx, topQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.TopPairs = []model.SyncPairEntry{}
	for rows.Next() {
		var quoteID, authorID uint64
		var entry model.SyncPairEntry
		if err := rows.Scan(&quoteID, &authorID, &entry.Rating, &entry.VoteCount); err != nil {
			return nil, err
		}
		entry.ID = pairIDString(quoteID, authorID)
		stats.TopPairs = append(stats.TopPairs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}

package service

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthorWorker is a periodic background job that refreshes cached author
// aggregates for authors whose pairs were voted on since the last tick.
type AuthorWorker struct {
	pool     *pgxpool.Pool
	cache    *CacheService
	interval time.Duration
	stopCh   chan struct{}
}

// NewAuthorWorker creates a worker that ticks every interval.
func NewAuthorWorker(pool *pgxpool.Pool, cache *CacheService, interval time.Duration) *AuthorWorker {
	return &AuthorWorker{
		pool:     pool,
		cache:    cache,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic refresh loop. It runs one tick immediately,
// then every interval.
func (w *AuthorWorker) Start(ctx context.Context) {
	log.Printf("author-worker: starting (interval=%s)", w.interval)

	lastTick := time.Time{}
	w.tick(ctx, lastTick)
	lastTick = time.Now()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx, lastTick)
			lastTick = time.Now()
		case <-ctx.Done():
			log.Println("author-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("author-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *AuthorWorker) Stop() {
	close(w.stopCh)
}

// tick invalidates the cached stats of every author touched since the last
// tick, so the next read recomputes them from the registry.
func (w *AuthorWorker) tick(ctx context.Context, since time.Time) {
	start := time.Now()

	rows, err := w.pool.Query(ctx, `
		SELECT DISTINCT author_id
		FROM wrong_quotes
		WHERE last_voted_at > $1`, since)
	if err != nil {
		log.Printf("author-worker: error: %v", err)
		return
	}
	defer rows.Close()

	var authorIDs []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			log.Printf("author-worker: scan error: %v", err)
			return
		}
		authorIDs = append(authorIDs, id)
	}
	if err := rows.Err(); err != nil {
		log.Printf("author-worker: rows error: %v", err)
		return
	}

	invalidated := 0
	for _, id := range authorIDs {
		if w.cache != nil {
			if err := w.cache.InvalidateAuthor(ctx, id); err != nil {
				log.Printf("author-worker: cache invalidate error for %d: %v", id, err)
				continue
			}
		}
		invalidated++
	}

	if invalidated > 0 {
		log.Printf("author-worker: tick complete, %d author aggregates invalidated (%s)",
			invalidated, time.Since(start).Round(time.Millisecond))
	}
}

package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// RatingWorker listens for PostgreSQL NOTIFY on the 'rating_changes' channel
// and batches rating reconciliations. The vote transaction already maintains
// the cached rating column; the worker re-derives it from the votes table so
// any drift (crashes, manual fixes) heals within one batch window.
type RatingWorker struct {
	pool        *pgxpool.Pool
	wrongQuotes *repository.WrongQuoteRepo
	cache       *CacheService
	batchMs     time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // pair keys waiting for reconciliation
}

// NewRatingWorker creates a rating reconciliation worker.
func NewRatingWorker(pool *pgxpool.Pool, wrongQuotes *repository.WrongQuoteRepo, cache *CacheService) *RatingWorker {
	return &RatingWorker{
		pool:        pool,
		wrongQuotes: wrongQuotes,
		cache:       cache,
		batchMs:     5 * time.Second,
		pending:     make(map[string]struct{}),
	}
}

// Start begins listening for rating_changes notifications and processing batches.
func (w *RatingWorker) Start(ctx context.Context) {
	log.Printf("rating-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("rating-worker: stopping (context cancelled)")
				return
			}
			log.Printf("rating-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("rating-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on rating_changes,
// and collects notified pair keys into the pending set.
func (w *RatingWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN rating_changes")
	if err != nil {
		return err
	}
	log.Println("rating-worker: listening on rating_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		if notification.Payload == "" {
			continue
		}

		w.mu.Lock()
		w.pending[notification.Payload] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *RatingWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and reconciles each pair's cached rating.
func (w *RatingWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	reconciled := 0
	for id := range batch {
		key, err := pairkey.Decode(id)
		if err != nil {
			log.Printf("rating-worker: bad key in notification: %q", id)
			continue
		}

		if err := w.wrongQuotes.RecalculateRating(ctx, key); err != nil {
			log.Printf("rating-worker: recalculate error for %s: %v", id, err)
			continue
		}

		if w.cache != nil {
			if err := w.cache.InvalidateRating(ctx, id); err != nil {
				log.Printf("rating-worker: cache invalidate error for %s: %v", id, err)
			}
		}

		reconciled++
	}

	if reconciled > 0 {
		log.Printf("rating-worker: batch complete, %d pairs reconciled (from %d notifications)",
			reconciled, len(batch))
	}
}

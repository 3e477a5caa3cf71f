package service

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

const (
	// Smart weighting: weight = smartBase + smartBias/(1 + |rating|).
	// Unrated pairs weigh 4, |rating|=1 weighs 2.5, heavily-rated pairs
	// approach 1. Every candidate keeps weight >= 1, so nothing starves and
	// nothing can take more than 4x the share of a uniform draw.
	smartBase = 1.0
	smartBias = 3.0

	// synthesisRetries bounds the re-rolls when a synthesized pair collides
	// with the current one.
	synthesisRetries = 16
)

// SelectionService picks the next pair to show. It is a stateless transition
// function: the caller supplies the current key, nothing is persisted.
type SelectionService struct {
	wrongQuotes *repository.WrongQuoteRepo
	quotes      *repository.QuoteRepo

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelectionService creates the engine. A non-empty decimal seed pins the
// draw sequence for reproduction; otherwise the sequence is random.
func NewSelectionService(wrongQuotes *repository.WrongQuoteRepo, quotes *repository.QuoteRepo, seed string) *SelectionService {
	var s1, s2 uint64
	if n, err := strconv.ParseUint(seed, 10, 64); err == nil && seed != "" {
		s1, s2 = n, n
	} else {
		s1, s2 = rand.Uint64(), rand.Uint64()
	}
	return &SelectionService{
		wrongQuotes: wrongQuotes,
		quotes:      quotes,
		rng:         rand.New(rand.NewPCG(s1, s2)),
	}
}

// Next picks the next pair under the given filter, excluding current. When
// the filtered pool minus current is empty it falls back to the all filter
// so the UI never dead-ends. The chosen pair is registered before return.
func (s *SelectionService) Next(ctx context.Context, filter model.Filter, current *pairkey.Key) (pairkey.Key, error) {
	if filter != model.FilterAll {
		candidates, err := s.wrongQuotes.ListCandidates(ctx, filter)
		if err != nil {
			return pairkey.Key{}, err
		}

		pool := excludeCurrent(candidates, current)
		if len(pool) > 0 {
			var picked model.Candidate
			s.mu.Lock()
			if filter == model.FilterSmart {
				picked = pickSmart(s.rng, pool)
			} else {
				picked = pool[s.rng.IntN(len(pool))]
			}
			s.mu.Unlock()
			return s.register(ctx, pairkey.Key{QuoteID: picked.QuoteID, AuthorID: picked.AuthorID})
		}
		// Pool exhausted under this filter; fall back to all.
	}

	key, err := s.synthesize(ctx, current)
	if err != nil {
		return pairkey.Key{}, err
	}
	return s.register(ctx, key)
}

// synthesize draws a uniformly random (quote, author) combination, existing
// or brand new, re-rolling a bounded number of times to avoid current.
func (s *SelectionService) synthesize(ctx context.Context, current *pairkey.Key) (pairkey.Key, error) {
	quoteIDs, err := s.quotes.ListQuoteIDs(ctx)
	if err != nil {
		return pairkey.Key{}, err
	}
	authorIDs, err := s.quotes.ListAuthorIDs(ctx)
	if err != nil {
		return pairkey.Key{}, err
	}
	if len(quoteIDs) == 0 || len(authorIDs) == 0 {
		return pairkey.Key{}, model.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var key pairkey.Key
	for i := 0; i < synthesisRetries; i++ {
		key = pairkey.Key{
			QuoteID:  quoteIDs[s.rng.IntN(len(quoteIDs))],
			AuthorID: authorIDs[s.rng.IntN(len(authorIDs))],
		}
		if current == nil || key != *current {
			break
		}
	}
	return key, nil
}

func (s *SelectionService) register(ctx context.Context, key pairkey.Key) (pairkey.Key, error) {
	if _, err := s.wrongQuotes.GetOrCreate(ctx, key); err != nil {
		return pairkey.Key{}, err
	}
	return key, nil
}

func excludeCurrent(candidates []model.Candidate, current *pairkey.Key) []model.Candidate {
	if current == nil {
		return candidates
	}
	pool := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.QuoteID == current.QuoteID && c.AuthorID == current.AuthorID {
			continue
		}
		pool = append(pool, c)
	}
	return pool
}

// SmartWeight returns the selection weight of a candidate rating.
func SmartWeight(rating int64) float64 {
	if rating < 0 {
		rating = -rating
	}
	return smartBase + smartBias/float64(1+rating)
}

// pickSmart draws one candidate with probability proportional to SmartWeight.
func pickSmart(rng *rand.Rand, pool []model.Candidate) model.Candidate {
	var total float64
	for _, c := range pool {
		total += SmartWeight(c.Rating)
	}

	r := rng.Float64() * total
	for _, c := range pool {
		r -= SmartWeight(c.Rating)
		if r < 0 {
			return c
		}
	}
	// Float underflow can leave r barely positive after the last candidate.
	return pool[len(pool)-1]
}

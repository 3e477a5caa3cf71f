package service

import (
	"context"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// pairRegistry is the slice of the registry the vote flow needs. Satisfied
// by *repository.WrongQuoteRepo.
type pairRegistry interface {
	GetOrCreate(ctx context.Context, key pairkey.Key) (*model.WrongQuote, error)
	Find(ctx context.Context, key pairkey.Key) (*model.WrongQuote, error)
}

var _ pairRegistry = (*repository.WrongQuoteRepo)(nil)

// VoteService orchestrates a vote submission: apply the vote, then pick the
// next pair under the round-tripped filter so the response can refresh the
// page in one round trip.
type VoteService struct {
	wrongQuotes pairRegistry
	rating      *RatingService
	selection   *SelectionService
}

func NewVoteService(wrongQuotes pairRegistry, rating *RatingService, selection *SelectionService) *VoteService {
	return &VoteService{wrongQuotes: wrongQuotes, rating: rating, selection: selection}
}

// Submit applies one vote and returns the snapshot plus the next selection.
func (s *VoteService) Submit(ctx context.Context, key pairkey.Key, identity string, value int, filter model.Filter) (*model.VoteResponse, error) {
	// The pair is created lazily on first vote; a dangling quote or author
	// id surfaces here as NotFound instead of seeding an orphan row.
	if _, err := s.wrongQuotes.GetOrCreate(ctx, key); err != nil {
		return nil, err
	}

	stored, snapshot, err := s.rating.CastVote(ctx, key, identity, value)
	if err != nil {
		return nil, err
	}

	next, err := s.selection.Next(ctx, filter, &key)
	if err != nil {
		return nil, err
	}

	return &model.VoteResponse{
		Success:  true,
		ID:       key.String(),
		Rating:   snapshot,
		YourVote: stored,
		NextID:   next.String(),
		NextHref: NextHref(next, filter),
	}, nil
}

// Retract removes the identity's vote on a pair (stores value 0).
func (s *VoteService) Retract(ctx context.Context, key pairkey.Key, identity string) (model.RatingSnapshot, error) {
	// A retraction never registers a pair: an unknown key is NotFound, not a
	// fresh registry row. Find instead of GetOrCreate keeps DELETE read-only
	// on the registry.
	if _, err := s.wrongQuotes.Find(ctx, key); err != nil {
		return model.RatingSnapshot{}, err
	}
	_, snapshot, err := s.rating.CastVote(ctx, key, identity, 0)
	return snapshot, err
}

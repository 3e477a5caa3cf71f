package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// RatingService folds votes into ratings. Votes are the source of truth; the
// registry's rating column and the Redis snapshot are caches over them.
type RatingService struct {
	votes *repository.VoteRepo
	cache *CacheService
}

func NewRatingService(votes *repository.VoteRepo, cache *CacheService) *RatingService {
	return &RatingService{votes: votes, cache: cache}
}

// ApplyToggle is the vote-update rule: re-casting the identical non-zero
// value retracts it, anything else overwrites.
func ApplyToggle(existing, requested int) int {
	if existing == requested && requested != 0 {
		return 0
	}
	return requested
}

// CastVote applies one vote for one identity and returns the stored value
// plus the resulting snapshot. The write is all-or-nothing; on a storage
// failure the caller may retry.
func (s *RatingService) CastVote(ctx context.Context, key pairkey.Key, identity string, value int) (int, model.RatingSnapshot, error) {
	if value < -1 || value > 1 {
		return 0, model.RatingSnapshot{}, fmt.Errorf("%w: %d", model.ErrInvalidValue, value)
	}

	stored, snapshot, err := s.votes.CastVote(ctx, key, identity, value)
	if err != nil {
		return 0, model.RatingSnapshot{}, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRating(ctx, key.String()); err != nil {
			log.Printf("cache: invalidate rating error: %v", err)
		}
		if err := s.cache.InvalidateAuthor(ctx, key.AuthorID); err != nil {
			log.Printf("cache: invalidate author error: %v", err)
		}
	}

	return stored, snapshot, nil
}

// GetRating returns the pair's rating snapshot, cache-aside.
func (s *RatingService) GetRating(ctx context.Context, key pairkey.Key) (model.RatingSnapshot, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRating(ctx, key.String())
		if err != nil {
			log.Printf("cache: rating get error: %v", err)
		} else if cached != nil {
			var snapshot model.RatingSnapshot
			if err := json.Unmarshal(cached, &snapshot); err == nil {
				return snapshot, nil
			}
		}
	}

	snapshot, err := s.votes.GetRating(ctx, key)
	if err != nil {
		return model.RatingSnapshot{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetRating(ctx, key.String(), snapshot); err != nil {
			log.Printf("cache: rating set error: %v", err)
		}
	}

	return snapshot, nil
}

// GetVote returns the identity's own current vote on a pair, for UI
// highlighting. 0 means no active vote.
func (s *RatingService) GetVote(ctx context.Context, key pairkey.Key, identity string) (int, error) {
	return s.votes.GetVote(ctx, key, identity)
}

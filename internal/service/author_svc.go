package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
)

type AuthorService struct {
	repo  *repository.AuthorRepo
	cache *CacheService
}

func NewAuthorService(repo *repository.AuthorRepo, cache *CacheService) *AuthorService {
	return &AuthorService{repo: repo, cache: cache}
}

// Stats returns the misattribution aggregates for one author.
// Cache-aside: check Redis first, fall back to DB, then populate cache.
func (s *AuthorService) Stats(ctx context.Context, authorID uint64) (*model.AuthorStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAuthor(ctx, authorID)
		if err != nil {
			log.Printf("cache: author get error: %v", err)
		} else if cached != nil {
			var stats model.AuthorStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.repo.GetStats(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAuthor(ctx, authorID, stats); err != nil {
			log.Printf("cache: author set error: %v", err)
		}
	}

	return stats, nil
}

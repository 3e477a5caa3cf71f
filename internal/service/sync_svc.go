package service

import (
	"context"
	"time"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
)

// SyncService exposes the engine's data to downstream consumers (share
// links, feed renderers, GIF generation) as delta and full feeds. The
// consumers themselves stay out of scope.
type SyncService struct {
	wrongQuotes *repository.WrongQuoteRepo
	authors     *repository.AuthorRepo
}

func NewSyncService(wrongQuotes *repository.WrongQuoteRepo, authors *repository.AuthorRepo) *SyncService {
	return &SyncService{wrongQuotes: wrongQuotes, authors: authors}
}

// DeltaSync returns all pair and author aggregate changes since the given
// timestamp.
func (s *SyncService) DeltaSync(ctx context.Context, since time.Time) (*model.SyncDeltaResponse, error) {
	pairs, err := s.wrongQuotes.ChangedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	authors, err := s.authors.AuthorsChangedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	if pairs == nil {
		pairs = []model.SyncPairEntry{}
	}
	if authors == nil {
		authors = []model.SyncAuthorEntry{}
	}

	return &model.SyncDeltaResponse{
		Pairs:         pairs,
		Authors:       authors,
		SyncTimestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// FullSync returns the complete rated dataset.
func (s *SyncService) FullSync(ctx context.Context) (*model.SyncFullResponse, error) {
	pairs, err := s.wrongQuotes.AllRated(ctx)
	if err != nil {
		return nil, err
	}
	if pairs == nil {
		pairs = []model.SyncPairEntry{}
	}

	return &model.SyncFullResponse{
		Pairs:       pairs,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

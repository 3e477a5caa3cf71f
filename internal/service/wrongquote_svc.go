package service

import (
	"context"
	"fmt"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// WrongQuoteService resolves pair keys into full API responses: the quote,
// the misattributed author, the real author, the rating and the caller's own
// vote, plus the precomputed next selection for the active filter.
type WrongQuoteService struct {
	quotes      *repository.QuoteRepo
	wrongQuotes *repository.WrongQuoteRepo
	rating      *RatingService
	selection   *SelectionService
}

func NewWrongQuoteService(quotes *repository.QuoteRepo, wrongQuotes *repository.WrongQuoteRepo, rating *RatingService, selection *SelectionService) *WrongQuoteService {
	return &WrongQuoteService{
		quotes:      quotes,
		wrongQuotes: wrongQuotes,
		rating:      rating,
		selection:   selection,
	}
}

// Resolve serves one pair: registers it if new, loads its parts, and fills
// in the caller-specific vote plus the next selection under filter.
func (s *WrongQuoteService) Resolve(ctx context.Context, key pairkey.Key, identity string, filter model.Filter) (*model.WrongQuoteResponse, error) {
	if _, err := s.wrongQuotes.GetOrCreate(ctx, key); err != nil {
		return nil, err
	}

	resp, err := s.build(ctx, key, identity, filter)
	if err != nil {
		return nil, err
	}

	next, err := s.selection.Next(ctx, filter, &key)
	if err != nil {
		return nil, err
	}
	resp.NextID = next.String()
	resp.NextHref = NextHref(next, filter)

	return resp, nil
}

// build assembles the response without selecting a successor.
func (s *WrongQuoteService) build(ctx context.Context, key pairkey.Key, identity string, filter model.Filter) (*model.WrongQuoteResponse, error) {
	quote, err := s.quotes.GetQuote(ctx, key.QuoteID)
	if err != nil {
		return nil, err
	}
	author, err := s.quotes.GetAuthor(ctx, key.AuthorID)
	if err != nil {
		return nil, err
	}
	realAuthor, err := s.quotes.GetAuthor(ctx, quote.RealAuthorID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.rating.GetRating(ctx, key)
	if err != nil {
		return nil, err
	}

	ownVote, err := s.rating.GetVote(ctx, key, identity)
	if err != nil {
		return nil, err
	}

	return &model.WrongQuoteResponse{
		ID:            key.String(),
		Quote:         *quote,
		Author:        *author,
		RealAuthor:    *realAuthor,
		Rating:        snapshot,
		RatingDisplay: snapshot.Display(),
		RatingFilter:  filter,
		Vote:          ownVote,
	}, nil
}

// NextHref builds the pair URL with the filter round-tripped.
func NextHref(key pairkey.Key, filter model.Filter) string {
	return fmt.Sprintf("/zitate/%s?r=%s", key.String(), filter)
}

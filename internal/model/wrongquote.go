package model

import "time"

// WrongQuote is one (quote, author) pairing. The pair itself is the identity;
// Rating and VoteCount are cache columns maintained alongside vote writes and
// reconciled by the rating worker.
type WrongQuote struct {
	QuoteID     uint64    `json:"quoteId"`
	AuthorID    uint64    `json:"authorId"`
	Rating      int64     `json:"rating"`
	VoteCount   int       `json:"voteCount"`
	CreatedAt   time.Time `json:"createdAt"`
	LastVotedAt time.Time `json:"lastVotedAt"`
}

// Candidate is the slim projection the selection engine works on.
type Candidate struct {
	QuoteID  uint64
	AuthorID uint64
	Rating   int64
}

// WrongQuoteResponse is the API response for a served pair.
type WrongQuoteResponse struct {
	ID            string         `json:"id"`
	Quote         Quote          `json:"quote"`
	Author        Author         `json:"author"`
	RealAuthor    Author         `json:"realAuthor"`
	Rating        RatingSnapshot `json:"rating"`
	RatingDisplay string         `json:"ratingDisplay"`
	RatingFilter  Filter         `json:"ratingFilter"`
	Vote          int            `json:"vote"`
	NextID        string         `json:"nextId,omitempty"`
	NextHref      string         `json:"nextHref,omitempty"`
}

// SyncPairEntry represents a pair change in a delta sync response.
type SyncPairEntry struct {
	ID        string `json:"id"`
	Rating    int64  `json:"rating"`
	VoteCount int    `json:"voteCount"`
}

// SyncAuthorEntry represents an author aggregate change in a delta sync response.
type SyncAuthorEntry struct {
	AuthorID  uint64  `json:"authorId"`
	AvgRating float64 `json:"avgRating"`
}

// SyncDeltaResponse lists pair and author changes since a timestamp.
type SyncDeltaResponse struct {
	Pairs         []SyncPairEntry   `json:"pairs"`
	Authors       []SyncAuthorEntry `json:"authors"`
	SyncTimestamp string            `json:"syncTimestamp"`
}

// SyncFullResponse is the complete rated dataset for bulk consumers.
type SyncFullResponse struct {
	Pairs       []SyncPairEntry `json:"pairs"`
	GeneratedAt string          `json:"generatedAt"`
}

package model

// Author is a canonical author record. Immutable once created; writes happen
// through an out-of-scope import path.
type Author struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Quote is a canonical quote record. RealAuthorID references the author who
// actually said it.
type Quote struct {
	ID           uint64 `json:"id"`
	Text         string `json:"text"`
	RealAuthorID uint64 `json:"realAuthorId"`
}

// QuoteResponse is the API response for quote info lookups.
type QuoteResponse struct {
	ID         uint64 `json:"id"`
	Text       string `json:"text"`
	RealAuthor Author `json:"realAuthor"`
}

// AuthorResponse is the API response for author info lookups.
type AuthorResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// AuthorStats holds aggregates over all pairings misattributed to an author.
type AuthorStats struct {
	AuthorID    uint64  `json:"authorId"`
	Name        string  `json:"name"`
	PairCount   int     `json:"pairCount"`
	RatedPairs  int     `json:"ratedPairs"`
	TotalRating int64   `json:"totalRating"`
	AvgRating   float64 `json:"avgRating"`
	BestPairID  string  `json:"bestPairId,omitempty"`
	BestRating  int64   `json:"bestRating"`
	LastUpdated string  `json:"lastUpdated"`
}

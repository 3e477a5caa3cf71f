package model

import "time"

// Vote is an individual vote record. Rows are never hard-deleted: retraction
// stores value 0 so the (identity, pair) history stays idempotent.
type Vote struct {
	QuoteID   uint64    `json:"quoteId"`
	AuthorID  uint64    `json:"authorId"`
	Identity  string    `json:"-"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VoteRequest is the vote submission body. Submitted as a form POST by the
// template layer; ID is the external pair key, R the active rating filter
// round-tripped for the next selection.
type VoteRequest struct {
	ID   string `json:"id" form:"id"`
	Vote string `json:"vote" form:"vote"`
	R    string `json:"r" form:"r"`
}

// VoteRetractRequest removes a vote (stores value 0).
type VoteRetractRequest struct {
	ID string `json:"id" form:"id"`
}

// VoteResponse is returned after a vote is applied.
type VoteResponse struct {
	Success  bool           `json:"success"`
	ID       string         `json:"id"`
	Rating   RatingSnapshot `json:"rating"`
	YourVote int            `json:"yourVote"`
	NextID   string         `json:"nextId"`
	NextHref string         `json:"nextHref"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalQuotes     int             `json:"totalQuotes"`
	TotalAuthors    int             `json:"totalAuthors"`
	TotalPairs      int             `json:"totalPairs"`
	TotalVotes      int             `json:"totalVotes"`
	ActiveVoters24h int             `json:"activeVoters24h"`
	TopPairs        []SyncPairEntry `json:"topPairs"`
}

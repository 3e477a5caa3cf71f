package model

import "strconv"

// Bucket classifies a pair's aggregate rating.
type Bucket string

const (
	BucketUnrated     Bucket = "unrated"
	BucketWitzig      Bucket = "witzig"
	BucketNichtWitzig Bucket = "nicht_witzig"
)

// MaxStamps caps the visual stamp count in either direction.
const MaxStamps = 4

// RatingSnapshot is the derived rating state of a pair: the plain sum of all
// current vote values plus its classification. VoteCount counts every vote
// row ever written, including retracted ones, so a pair that was voted on
// and toggled back to zero is distinguishable from one nobody touched.
type RatingSnapshot struct {
	Numeric    int64  `json:"numeric"`
	Bucket     Bucket `json:"bucket"`
	StampCount int    `json:"stampCount"`
	VoteCount  int    `json:"voteCount"`
}

// NewRatingSnapshot derives the bucket and stamp count from a vote sum.
func NewRatingSnapshot(numeric int64, voteCount int) RatingSnapshot {
	s := RatingSnapshot{Numeric: numeric, Bucket: BucketUnrated, VoteCount: voteCount}
	switch {
	case numeric > 0:
		s.Bucket = BucketWitzig
		s.StampCount = clampStamps(numeric)
	case numeric < 0:
		s.Bucket = BucketNichtWitzig
		s.StampCount = clampStamps(-numeric)
	}
	return s
}

// Display renders the rating for the template layer: the numeric sum, "???"
// for a pair nobody ever voted on, "---" for one whose votes cancel out.
func (s RatingSnapshot) Display() string {
	if s.Numeric != 0 {
		return strconv.FormatInt(s.Numeric, 10)
	}
	if s.VoteCount == 0 {
		return "???"
	}
	return "---"
}

func clampStamps(n int64) int {
	if n > MaxStamps {
		return MaxStamps
	}
	return int(n)
}

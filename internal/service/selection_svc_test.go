package service

import (
	"math/rand/v2"
	"testing"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 42))
}

func TestSmartWeight(t *testing.T) {
	tests := []struct {
		name   string
		rating int64
		want   float64
	}{
		{"unrated", 0, 4.0},
		{"one up", 1, 2.5},
		{"one down (symmetric)", -1, 2.5},
		{"three", 3, 1.75},
		{"heavily rated", 299, 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SmartWeight(tt.rating)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("SmartWeight(%d) = %v, want %v", tt.rating, got, tt.want)
			}
		})
	}
}

func TestSmartWeight_FloorIsOne(t *testing.T) {
	for _, rating := range []int64{0, 1, 10, 1000, -1000, 1 << 40} {
		if w := SmartWeight(rating); w < 1.0 {
			t.Errorf("SmartWeight(%d) = %v, below floor of 1", rating, w)
		}
	}
}

func TestPickSmart_NonStarvation(t *testing.T) {
	// One unrated pair among popular ones must be drawn at least once in
	// 10000 draws. Its weight share is 4/(4+3*1.03...) ≈ 39%, so missing
	// every draw is astronomically unlikely.
	pool := []model.Candidate{
		{QuoteID: 1, AuthorID: 1, Rating: 120},
		{QuoteID: 2, AuthorID: 2, Rating: 95},
		{QuoteID: 3, AuthorID: 3, Rating: -80},
		{QuoteID: 42, AuthorID: 3, Rating: 0}, // unrated
	}

	rng := testRNG()
	seenUnrated := false
	for i := 0; i < 10000; i++ {
		c := pickSmart(rng, pool)
		if c.QuoteID == 42 && c.AuthorID == 3 {
			seenUnrated = true
			break
		}
	}
	if !seenUnrated {
		t.Error("unrated pair was never selected in 10000 smart draws")
	}
}

func TestPickSmart_NoMonopoly(t *testing.T) {
	// No single pair may monopolize smart selection: with the weight floor
	// of 1, a pair's share is bounded by 4/(n+3) of the pool mass. Over
	// 10000 draws from 4 candidates every candidate must show up.
	pool := []model.Candidate{
		{QuoteID: 1, AuthorID: 1, Rating: 0},
		{QuoteID: 2, AuthorID: 2, Rating: 0},
		{QuoteID: 3, AuthorID: 3, Rating: 500},
		{QuoteID: 4, AuthorID: 4, Rating: -500},
	}

	rng := testRNG()
	counts := make(map[uint64]int)
	for i := 0; i < 10000; i++ {
		counts[pickSmart(rng, pool).QuoteID]++
	}

	for _, c := range pool {
		if counts[c.QuoteID] == 0 {
			t.Errorf("candidate %d was never drawn", c.QuoteID)
		}
		if counts[c.QuoteID] > 8000 {
			t.Errorf("candidate %d took %d of 10000 draws", c.QuoteID, counts[c.QuoteID])
		}
	}
}

func TestPickSmart_BiasTowardUnrated(t *testing.T) {
	pool := []model.Candidate{
		{QuoteID: 1, AuthorID: 1, Rating: 0},
		{QuoteID: 2, AuthorID: 2, Rating: 50},
	}

	rng := testRNG()
	counts := make(map[uint64]int)
	for i := 0; i < 10000; i++ {
		counts[pickSmart(rng, pool).QuoteID]++
	}

	if counts[1] <= counts[2] {
		t.Errorf("unrated drawn %d times, rated %d times; expected unrated bias", counts[1], counts[2])
	}
}

func TestPickSmart_Deterministic(t *testing.T) {
	pool := []model.Candidate{
		{QuoteID: 1, AuthorID: 1, Rating: 0},
		{QuoteID: 2, AuthorID: 2, Rating: 3},
		{QuoteID: 3, AuthorID: 3, Rating: -2},
	}

	a, b := testRNG(), testRNG()
	for i := 0; i < 100; i++ {
		if pickSmart(a, pool) != pickSmart(b, pool) {
			t.Fatal("same seed should produce the same draw sequence")
		}
	}
}

func TestExcludeCurrent(t *testing.T) {
	candidates := []model.Candidate{
		{QuoteID: 42, AuthorID: 3, Rating: 1},
		{QuoteID: 7, AuthorID: 9, Rating: 2},
	}
	current := pairkey.Key{QuoteID: 42, AuthorID: 3}

	pool := excludeCurrent(candidates, &current)
	if len(pool) != 1 {
		t.Fatalf("pool size = %d, want 1", len(pool))
	}
	if pool[0].QuoteID != 7 || pool[0].AuthorID != 9 {
		t.Errorf("pool = %+v, current pair not excluded", pool)
	}

	// The rated-filter guarantee: as long as another candidate exists, the
	// current pair can never be drawn, under any picker.
	rng := testRNG()
	for i := 0; i < 1000; i++ {
		c := pickSmart(rng, pool)
		if c.QuoteID == 42 && c.AuthorID == 3 {
			t.Fatal("excluded current pair was drawn")
		}
	}
}

func TestExcludeCurrent_NilCurrent(t *testing.T) {
	candidates := []model.Candidate{{QuoteID: 1, AuthorID: 2}}
	pool := excludeCurrent(candidates, nil)
	if len(pool) != 1 {
		t.Errorf("pool size = %d, want 1", len(pool))
	}
}

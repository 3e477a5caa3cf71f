package service

import (
	"testing"

	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
)

func TestAuthorAvg_NoRatedPairs(t *testing.T) {
	avg := repository.ComputeAuthorAvgPure(0, 0)
	if avg != 0 {
		t.Errorf("avg = %.2f, want 0.00 (no rated pairs)", avg)
	}
}

func TestAuthorAvg_SingleRatedPair(t *testing.T) {
	avg := repository.ComputeAuthorAvgPure(5, 1)
	if avg != 5.0 {
		t.Errorf("avg = %.2f, want 5.00", avg)
	}
}

func TestAuthorAvg_Rounding(t *testing.T) {
	// 10 total over 3 rated pairs = 3.333... → 3.33
	avg := repository.ComputeAuthorAvgPure(10, 3)
	if avg != 3.33 {
		t.Errorf("avg = %.2f, want 3.33", avg)
	}
}

func TestAuthorAvg_NegativeTotal(t *testing.T) {
	// Misattributions that mostly flop drag the average below zero.
	avg := repository.ComputeAuthorAvgPure(-7, 2)
	if avg != -3.5 {
		t.Errorf("avg = %.2f, want -3.50", avg)
	}
}

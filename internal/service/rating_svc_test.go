package service

import (
	"testing"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
)

// voteLedger mirrors the votes-table upsert for unit testing the aggregation
// contract without a database: one slot per identity, toggle rule on write,
// rating = sum of current values, count = rows ever written.
type voteLedger struct {
	values map[string]int
}

func newVoteLedger() *voteLedger {
	return &voteLedger{values: make(map[string]int)}
}

func (l *voteLedger) cast(identity string, value int) int {
	stored := ApplyToggle(l.values[identity], value)
	l.values[identity] = stored
	return stored
}

func (l *voteLedger) snapshot() model.RatingSnapshot {
	var sum int64
	for _, v := range l.values {
		sum += int64(v)
	}
	return model.NewRatingSnapshot(sum, len(l.values))
}

func TestApplyToggle(t *testing.T) {
	tests := []struct {
		name      string
		existing  int
		requested int
		want      int
	}{
		{"first upvote", 0, 1, 1},
		{"first downvote", 0, -1, -1},
		{"repeat upvote toggles off", 1, 1, 0},
		{"repeat downvote toggles off", -1, -1, 0},
		{"overwrite up with down", 1, -1, -1},
		{"overwrite down with up", -1, 1, 1},
		{"explicit retraction", 1, 0, 0},
		{"retraction of nothing", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyToggle(tt.existing, tt.requested)
			if got != tt.want {
				t.Errorf("ApplyToggle(%d, %d) = %d, want %d", tt.existing, tt.requested, got, tt.want)
			}
		})
	}
}

func TestVoteToggle_RestoresAndReapplies(t *testing.T) {
	l := newVoteLedger()

	before := l.snapshot().Numeric

	l.cast("abc", 1)
	if got := l.snapshot().Numeric; got != before+1 {
		t.Fatalf("after vote: numeric = %d, want %d", got, before+1)
	}

	// Identical second cast is a toggle-off.
	l.cast("abc", 1)
	if got := l.snapshot().Numeric; got != before {
		t.Fatalf("after toggle-off: numeric = %d, want %d", got, before)
	}

	// Third identical cast reapplies.
	l.cast("abc", 1)
	if got := l.snapshot().Numeric; got != before+1 {
		t.Fatalf("after toggle-on: numeric = %d, want %d", got, before+1)
	}
}

func TestVotes_TwoIdentitiesBothCount(t *testing.T) {
	// Both interleavings must land on vote_a + vote_b.
	orders := [][]struct {
		identity string
		value    int
	}{
		{{"a", 1}, {"b", -1}},
		{{"b", -1}, {"a", 1}},
	}

	for _, order := range orders {
		l := newVoteLedger()
		for _, v := range order {
			l.cast(v.identity, v.value)
		}
		snap := l.snapshot()
		if snap.Numeric != 0 {
			t.Errorf("numeric = %d, want 0 (1 + -1)", snap.Numeric)
		}
		if snap.Bucket != model.BucketUnrated {
			t.Errorf("bucket = %q, want unrated", snap.Bucket)
		}
		if snap.StampCount != 0 {
			t.Errorf("stampCount = %d, want 0", snap.StampCount)
		}
	}
}

func TestSnapshot_ExampleScenario(t *testing.T) {
	// Quote #42 paired with author #3: one upvote → witzig with one stamp.
	l := newVoteLedger()
	l.cast("abc", 1)

	snap := l.snapshot()
	if snap.Numeric != 1 || snap.Bucket != model.BucketWitzig || snap.StampCount != 1 {
		t.Errorf("snapshot = %+v, want {1 witzig 1}", snap)
	}

	// Second identity downvotes → back to unrated.
	l.cast("def", -1)
	snap = l.snapshot()
	if snap.Numeric != 0 || snap.Bucket != model.BucketUnrated || snap.StampCount != 0 {
		t.Errorf("snapshot = %+v, want {0 unrated 0}", snap)
	}
}

func TestSnapshot_StampsCapAtFour(t *testing.T) {
	l := newVoteLedger()
	for i := 0; i < 7; i++ {
		l.cast(string(rune('a'+i)), 1)
	}

	snap := l.snapshot()
	if snap.Numeric != 7 {
		t.Fatalf("numeric = %d, want 7", snap.Numeric)
	}
	if snap.StampCount != model.MaxStamps {
		t.Errorf("stampCount = %d, want %d", snap.StampCount, model.MaxStamps)
	}
}

func TestSnapshot_Display(t *testing.T) {
	tests := []struct {
		name      string
		numeric   int64
		voteCount int
		want      string
	}{
		{"never voted", 0, 0, "???"},
		{"votes cancel out", 0, 2, "---"},
		{"retracted only", 0, 1, "---"},
		{"positive", 3, 3, "3"},
		{"negative", -2, 4, "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.NewRatingSnapshot(tt.numeric, tt.voteCount).Display()
			if got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

package repository

import (
	"sync"
	"testing"

	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// registryLedger mirrors the insert-if-absent upsert behind GetOrCreate for
// unit testing the registration contract without a database: the first
// writer creates the row, every later caller resolves to the same one.
type registryLedger struct {
	mu      sync.Mutex
	rows    map[string]struct{}
	creates int
}

func newRegistryLedger() *registryLedger {
	return &registryLedger{rows: make(map[string]struct{})}
}

func (l *registryLedger) getOrCreate(key pairkey.Key) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := key.String()
	if _, ok := l.rows[id]; !ok {
		l.rows[id] = struct{}{}
		l.creates++
	}
	return id
}

func TestGetOrCreateConcurrentSamePair(t *testing.T) {
	ledger := newRegistryLedger()
	key := pairkey.Key{QuoteID: 42, AuthorID: 3}

	const callers = 64
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- ledger.getOrCreate(key)
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		if id != "42-3" {
			t.Errorf("got key %q, want 42-3", id)
		}
	}
	if len(ledger.rows) != 1 {
		t.Errorf("registry has %d rows, want 1", len(ledger.rows))
	}
	if ledger.creates != 1 {
		t.Errorf("pair created %d times, want 1", ledger.creates)
	}
}

func TestGetOrCreateDistinctPairs(t *testing.T) {
	ledger := newRegistryLedger()
	keys := []pairkey.Key{
		{QuoteID: 42, AuthorID: 3},
		{QuoteID: 3, AuthorID: 42},
		{QuoteID: 42, AuthorID: 4},
		{QuoteID: 42, AuthorID: 3},
	}
	for _, k := range keys {
		ledger.getOrCreate(k)
	}
	if len(ledger.rows) != 3 {
		t.Errorf("registry has %d rows, want 3", len(ledger.rows))
	}
	if ledger.creates != 3 {
		t.Errorf("%d creations, want 3", ledger.creates)
	}
}

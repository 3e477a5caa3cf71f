package service

import (
	"context"
	"errors"
	"testing"

	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// fakeRegistry backs the vote flow with an in-memory registry so the
// existence checks run without a database. valid holds the keys whose quote
// and author exist; rows holds the registered pairs. GetOrCreate validates
// then registers, Find only reads, mirroring the repository.
type fakeRegistry struct {
	valid map[string]bool
	rows  map[string]*model.WrongQuote
}

func newFakeRegistry(validKeys ...pairkey.Key) *fakeRegistry {
	f := &fakeRegistry{valid: make(map[string]bool), rows: make(map[string]*model.WrongQuote)}
	for _, k := range validKeys {
		f.valid[k.String()] = true
	}
	return f
}

func (f *fakeRegistry) GetOrCreate(_ context.Context, key pairkey.Key) (*model.WrongQuote, error) {
	id := key.String()
	if !f.valid[id] {
		return nil, model.ErrNotFound
	}
	if _, ok := f.rows[id]; !ok {
		f.rows[id] = &model.WrongQuote{QuoteID: key.QuoteID, AuthorID: key.AuthorID}
	}
	return f.rows[id], nil
}

func (f *fakeRegistry) Find(_ context.Context, key pairkey.Key) (*model.WrongQuote, error) {
	if wq, ok := f.rows[key.String()]; ok {
		return wq, nil
	}
	return nil, model.ErrNotFound
}

// Submit on a well-formed key whose quote or author does not exist must fail
// before any vote is written. The nil rating and selection services double as
// the assertion: touching either would panic.
func TestSubmitUnknownPairRejected(t *testing.T) {
	registry := newFakeRegistry()
	svc := NewVoteService(registry, nil, nil)

	key := pairkey.Key{QuoteID: 999999, AuthorID: 999999}
	_, err := svc.Submit(context.Background(), key, "identity-1", 1, model.FilterSmart)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Submit(%s) error = %v, want ErrNotFound", key, err)
	}
	if len(registry.rows) != 0 {
		t.Errorf("registry has %d rows after rejected submit, want 0", len(registry.rows))
	}
}

// Retract on an unknown key must fail the same way and must never register
// the pair: a DELETE that seeds a registry row would let the selection engine
// serve a key that then resolves to 404.
func TestRetractUnknownPairRejected(t *testing.T) {
	registry := newFakeRegistry()
	svc := NewVoteService(registry, nil, nil)

	key := pairkey.Key{QuoteID: 999999, AuthorID: 999999}
	_, err := svc.Retract(context.Background(), key, "identity-1")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Retract(%s) error = %v, want ErrNotFound", key, err)
	}
	if len(registry.rows) != 0 {
		t.Errorf("registry has %d rows after rejected retraction, want 0", len(registry.rows))
	}
}

// Retracting on a pair that exists but was never registered stays read-only:
// no vote can exist on it, so the answer is NotFound, not a new row.
func TestRetractDoesNotRegisterPairs(t *testing.T) {
	key := pairkey.Key{QuoteID: 42, AuthorID: 3}
	registry := newFakeRegistry(key)
	svc := NewVoteService(registry, nil, nil)

	_, err := svc.Retract(context.Background(), key, "identity-1")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Retract(%s) error = %v, want ErrNotFound", key, err)
	}
	if len(registry.rows) != 0 {
		t.Errorf("retraction registered %d pairs, want 0", len(registry.rows))
	}
}

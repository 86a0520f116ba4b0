// Package memory provides an in-memory docstore.Store. It backs unit tests
// and local development without a database; the observable contract matches
// the Postgres implementation.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/508labs/spendings/internal/docstore"
)

type Store struct {
	mu          sync.Mutex
	collections map[string][]docstore.Document
}

func New() *Store {
	return &Store{collections: make(map[string][]docstore.Document)}
}

// Insert serializes doc and appends it to the named collection.
func (s *Store) Insert(_ context.Context, collection string, doc any) (uuid.UUID, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := docstore.Document{
		ID:         uuid.New(),
		Data:       data,
		InsertedAt: time.Now().UTC(),
	}
	s.collections[collection] = append(s.collections[collection], d)
	return d.ID, nil
}

// Find returns matching documents in insertion order.
func (s *Store) Find(_ context.Context, collection string, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []docstore.Document
	for _, d := range s.collections[collection] {
		ok, err := matches(d.Data, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Collections lists non-empty collection names in lexical order.
func (s *Store) Collections(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.collections))
	for name, docs := range s.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Ping(context.Context) error { return nil }

// matches reports whether every filter field equals the corresponding
// top-level field of the document body. Values are compared through their
// JSON representation so that callers may filter with plain Go values.
func matches(data []byte, filter docstore.Filter) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return false, fmt.Errorf("unmarshal document: %w", err)
	}

	for field, want := range filter {
		got, ok := body[field]
		if !ok {
			return false, nil
		}
		wantJSON, err := json.Marshal(want)
		if err != nil {
			return false, fmt.Errorf("marshal filter value: %w", err)
		}
		if string(got) != string(wantJSON) {
			return false, nil
		}
	}
	return true, nil
}

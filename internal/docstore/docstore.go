// Package docstore defines the document-store port used by every domain
// package. The store is a set of schemaless collections supporting insert,
// filtered find and insertion ordering; anything fancier (sorting, limits
// applied after ordering, aggregation) is done by the caller in memory.
package docstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Storage namespaces, declared once. Entity kinds map to collection names
// through this table and nowhere else.
const (
	CollectionTransaction = "transaction"
	CollectionRecurring   = "recurring"
	CollectionShare       = "share"
)

// Filter matches documents whose top-level fields equal the given values.
type Filter map[string]any

// Document is a stored record: its assigned identifier, the raw JSON body
// and the insertion timestamp that defines the store's native ordering.
type Document struct {
	ID         uuid.UUID
	Data       []byte
	InsertedAt time.Time
}

// Store is the document-store contract. Implementations must return
// documents from Find in insertion order; limit <= 0 means no limit.
type Store interface {
	// Insert serializes doc into the named collection and returns the
	// newly assigned document identifier.
	Insert(ctx context.Context, collection string, doc any) (uuid.UUID, error)

	// Find returns at most limit documents whose bodies match the filter.
	Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error)

	// Collections lists the collection names that hold at least one
	// document. Used by the diagnostic endpoint only.
	Collections(ctx context.Context) ([]string, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/508labs/spendings/internal/docstore"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// Store implements docstore.Store on top of a single JSONB documents table.
// Every collection shares the table; the collection column is the namespace.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new PostgreSQL-backed document store
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Insert serializes doc into the named collection and returns its identifier.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (uuid.UUID, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal document: %w", err)
	}

	query := `
		INSERT INTO documents (id, collection, data, inserted_at)
		VALUES ($1, $2, $3, $4)
	`

	id := uuid.New()
	if _, err := s.pool.Exec(ctx, query, id, collection, data, time.Now().UTC()); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Find returns documents matching the filter in insertion order. The filter
// is translated to JSONB containment, which matches exact top-level values.
func (s *Store) Find(ctx context.Context, collection string, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	if filter == nil {
		filter = docstore.Filter{}
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}

	query := `
		SELECT id, data, inserted_at
		FROM documents
		WHERE collection = $1 AND data @> $2
		ORDER BY inserted_at, id
	`
	args := []any{collection, filterJSON}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var d docstore.Document
		if err := rows.Scan(&d.ID, &d.Data, &d.InsertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// Collections lists the distinct collection names currently stored.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT collection FROM documents ORDER BY collection`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection name: %w", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return names, nil
}

// Ping reports whether the database is reachable. Failures carry the
// store-unavailable code so callers map them to a service-unavailable
// response.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

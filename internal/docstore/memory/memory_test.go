package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/508labs/spendings/internal/docstore"
)

func TestStore_InsertFind(t *testing.T) {
	ctx := context.Background()
	store := New()

	type doc struct {
		ClientID string  `json:"client_id"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	ids := make([]uuid.UUID, 0, 3)
	for _, d := range []doc{
		{ClientID: "c1", Category: "Food", Amount: -20},
		{ClientID: "c1", Category: "Salary", Amount: 50},
		{ClientID: "c2", Category: "Food", Amount: -5},
	} {
		id, err := store.Insert(ctx, docstore.CollectionTransaction, d)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		ids = append(ids, id)
	}

	t.Run("empty filter matches everything in insertion order", func(t *testing.T) {
		docs, err := store.Find(ctx, docstore.CollectionTransaction, nil, 0)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		for i, d := range docs {
			assert.Equal(t, ids[i], d.ID)
		}
	})

	t.Run("filters on top-level field equality", func(t *testing.T) {
		docs, err := store.Find(ctx, docstore.CollectionTransaction, docstore.Filter{"client_id": "c1"}, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("multiple filter fields are conjunctive", func(t *testing.T) {
		docs, err := store.Find(ctx, docstore.CollectionTransaction, docstore.Filter{
			"client_id": "c1",
			"category":  "Food",
		}, 0)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, ids[0], docs[0].ID)
	})

	t.Run("filter values compare through their JSON form", func(t *testing.T) {
		docs, err := store.Find(ctx, docstore.CollectionTransaction, docstore.Filter{"amount": -20.0}, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("missing field never matches", func(t *testing.T) {
		docs, err := store.Find(ctx, docstore.CollectionTransaction, docstore.Filter{"token": "abc"}, 0)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("limit truncates in insertion order", func(t *testing.T) {
		docs, err := store.Find(ctx, docstore.CollectionTransaction, nil, 2)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, ids[0], docs[0].ID)
		assert.Equal(t, ids[1], docs[1].ID)
	})

	t.Run("unknown collection is empty", func(t *testing.T) {
		docs, err := store.Find(ctx, "nope", nil, 0)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestStore_Collections(t *testing.T) {
	ctx := context.Background()
	store := New()

	names, err := store.Collections(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.Insert(ctx, docstore.CollectionShare, map[string]any{"token": "abc"})
	require.NoError(t, err)
	_, err = store.Insert(ctx, docstore.CollectionTransaction, map[string]any{"client_id": "c1"})
	require.NoError(t, err)

	names, err = store.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{docstore.CollectionShare, docstore.CollectionTransaction}, names)
}

func TestStore_Ping(t *testing.T) {
	assert.NoError(t, New().Ping(context.Background()))
}

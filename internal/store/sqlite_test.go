package store_test

import (
	"context"
	"testing"

	"courtside/internal/database"
	"courtside/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestKV creates a KV over a temporary in-memory SQLite database.
func setupTestKV(t *testing.T) (store.KV, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	kv := store.NewSQLite(db)
	teardown := func() {
		dbTeardown()
	}
	return kv, teardown
}

func TestRoundTrip(t *testing.T) {
	kv, teardown := setupTestKV(t)
	defer teardown()
	ctx := context.Background()

	cases := []struct {
		name  string
		value []byte
	}{
		{"collection", []byte(`[{"id":1,"name":"A"},{"id":2,"name":"B"}]`)},
		{"object", []byte(`{"news":[],"lastUpdated":0}`)},
		{"empty array", []byte(`[]`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "k", tc.value))
			got, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, tc.value, got)
		})
	}
}

func TestGetMissingKey(t *testing.T) {
	kv, teardown := setupTestKV(t)
	defer teardown()

	got, err := kv.Get(context.Background(), "never-set")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSetOverwrites(t *testing.T) {
	kv, teardown := setupTestKV(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "coaches", []byte(`[1]`)))
	require.NoError(t, kv.Set(ctx, "coaches", []byte(`[1,2]`)))

	got, err := kv.Get(ctx, "coaches")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)
}

func TestHasAndRemove(t *testing.T) {
	kv, teardown := setupTestKV(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "products", []byte(`[]`)))

	has, err := kv.Has(ctx, "products")
	require.NoError(t, err)
	assert.True(t, has)

	removed, err := kv.Remove(ctx, "products")
	require.NoError(t, err)
	assert.True(t, removed)

	has, err = kv.Has(ctx, "products")
	require.NoError(t, err)
	assert.False(t, has)

	// Removing an absent key is idempotent.
	removed, err = kv.Remove(ctx, "products")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestKeysAndClear(t *testing.T) {
	kv, teardown := setupTestKV(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "coaches", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "grounds", []byte(`[]`)))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"coaches", "grounds"}, keys)

	require.NoError(t, kv.Clear(ctx))

	keys, err = kv.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 0)
}

func TestGetJSONCorruptEntry(t *testing.T) {
	kv, teardown := setupTestKV(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "coaches", []byte(`{not json`)))

	var out []map[string]any
	ok, err := store.GetJSON(ctx, kv, "coaches", &out)
	require.NoError(t, err, "corrupt entries must not surface as faults")
	assert.False(t, ok)
	assert.Nil(t, out)
}

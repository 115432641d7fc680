package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "profiles.db")
	st, err := Open(DefaultConfig(dbPath))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPutGetRoundTrips(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	exported := map[string]any{
		"id":       "profile-1",
		"patterns": []any{map[string]any{"regex": "^[a-z]+$"}},
	}
	require.NoError(t, st.Put(ctx, "profile-1", exported))

	got, err := st.Get(ctx, "profile-1")
	require.NoError(t, err)
	assert.Equal(t, "profile-1", got["id"])
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	st := setupTestStore(t)
	_, err := st.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutOverwritesExistingID(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "profile-1", map[string]any{"version": float64(1)}))
	require.NoError(t, st.Put(ctx, "profile-1", map[string]any{"version": float64(2)}))

	got, err := st.Get(ctx, "profile-1")
	require.NoError(t, err)
	assert.Equal(t, float64(2), got["version"])
}

func TestListReturnsStoredIDs(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "profile-a", map[string]any{}))
	require.NoError(t, st.Put(ctx, "profile-b", map[string]any{}))

	ids, err := st.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"profile-a", "profile-b"}, ids)
}

package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &Entry{Title: "First Post", DraftID: 1, URL: "https://x.substack.com/publish/post/1", Audience: "everyone"}
	require.NoError(t, store.Record(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &Entry{Title: "Second Post", DraftID: 2, URL: "https://x.substack.com/p/second", Audience: "paid", Published: true}
	require.NoError(t, store.Record(ctx, second))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first.
	assert.Equal(t, "Second Post", entries[0].Title)
	assert.True(t, entries[0].Published)
	assert.Equal(t, "paid", entries[0].Audience)
	assert.Equal(t, "First Post", entries[1].Title)
	assert.False(t, entries[1].Published)
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &Entry{Title: "post", DraftID: i}))
	}

	entries, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRecentEmpty(t *testing.T) {
	store := newTestStore(t)
	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), &Entry{Title: "kept"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Title)
}

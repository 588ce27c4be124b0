package suggestcache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasktango/backend/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "suggestions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetMissingKey(t *testing.T) {
	store := openStore(t)

	_, found, err := store.Get("nothing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestPutAndGet(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Put("key-a", domain.PriorityHigh))

	entry, found, err := store.Get("key-a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.PriorityHigh, entry.Priority)
	require.WithinDuration(t, time.Now(), entry.StoredAt, time.Minute)
}

func TestPutOverwrites(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Put("key-a", domain.PriorityLow))
	require.NoError(t, store.Put("key-a", domain.PriorityHigh))

	entry, found, err := store.Get("key-a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.PriorityHigh, entry.Priority)

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)
}

func TestCleanupDropsOldEntries(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Put("old", domain.PriorityLow))
	time.Sleep(10 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Put("fresh", domain.PriorityHigh))

	removed, err := store.Cleanup(cutoff)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, found, err := store.Get("old")
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = store.Get("fresh")
	require.NoError(t, err)
	require.True(t, found)
}

func TestSizeCountsEntries(t *testing.T) {
	store := openStore(t)

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 0, size)

	require.NoError(t, store.Put("a", domain.PriorityLow))
	require.NoError(t, store.Put("b", domain.PriorityMedium))

	size, err = store.Size()
	require.NoError(t, err)
	require.Equal(t, 2, size)
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("key", domain.PriorityMedium))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	entry, found, err := reopened.Get("key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.PriorityMedium, entry.Priority)
}

package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrfx-gateway/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

func testRepo(t *testing.T) *SqliteCacheRepo {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return NewSqliteCacheRepo(db)
}

func TestCacheRepoRoundTrip(t *testing.T) {
	repo := testRepo(t)
	storedAt := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Put(domain.CacheEntry{Key: "fx-rate-v2-AUD", Payload: []byte(`{"rate":88.4}`), StoredAt: storedAt}))

	entry, ok, err := repo.Get("fx-rate-v2-AUD")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"rate":88.4}`), entry.Payload)
	assert.Equal(t, storedAt.Unix(), entry.StoredAt.Unix())
}

func TestCacheRepoMissingKey(t *testing.T) {
	repo := testRepo(t)
	_, ok, err := repo.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheRepoLastWriteWins(t *testing.T) {
	repo := testRepo(t)
	now := time.Now()

	require.NoError(t, repo.Put(domain.CacheEntry{Key: "k", Payload: []byte("first"), StoredAt: now}))
	require.NoError(t, repo.Put(domain.CacheEntry{Key: "k", Payload: []byte("second"), StoredAt: now.Add(time.Second)}))

	entry, ok, err := repo.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), entry.Payload)
}

func TestCacheRepoPurgeOlderThan(t *testing.T) {
	repo := testRepo(t)
	now := time.Now()

	require.NoError(t, repo.Put(domain.CacheEntry{Key: "old", Payload: []byte("x"), StoredAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Put(domain.CacheEntry{Key: "fresh", Payload: []byte("y"), StoredAt: now}))

	require.NoError(t, repo.PurgeOlderThan(now.Add(-24*time.Hour)))

	_, ok, err := repo.Get("old")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.Get("fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}

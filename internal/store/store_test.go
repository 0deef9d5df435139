package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behavior every Store must share
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "guide:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "guide:a", `{"title":"A"}`))
	require.NoError(t, s.Set(ctx, "guide:b", "second"))

	got, err := s.Get(ctx, "guide:a")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"A"}`, got)

	require.NoError(t, s.Set(ctx, "guide:a", "replaced"))
	got, err = s.Get(ctx, "guide:a")
	require.NoError(t, err)
	assert.Equal(t, "replaced", got)

	got, err = s.Get(ctx, "guide:b")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "nested", "guides.json")))
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guides.json")
	ctx := context.Background()

	require.NoError(t, NewFileStore(path).Set(ctx, "k", "v"))

	got, err := NewFileStore(path).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guides.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).Get(context.Background(), "k")
	assert.ErrorContains(t, err, "failed to parse store file")
}

func TestFileStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileStore(filepath.Join(t.TempDir(), "guides.json")).Set(ctx, "k", "v")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCached(t *testing.T) {
	exerciseStore(t, NewCached(NewMemoryStore(), time.Minute))
}

func TestCachedServesFromMemory(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore()
	cached := NewCached(backend, time.Minute)

	require.NoError(t, backend.Set(ctx, "k", "old"))
	got, err := cached.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "old", got)

	// a write that bypasses the cache is not seen until the entry expires
	require.NoError(t, backend.Set(ctx, "k", "new"))
	got, err = cached.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "old", got)

	require.NoError(t, cached.Set(ctx, "k", "newest"))
	got, err = backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "newest", got)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("GUIDEMARK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GUIDEMARK_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	s, err := NewRedisStore(ctx, url, "guidemark-test:"+time.Now().Format("150405.000000")+":")
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, "127.0.0.1:1", "")
	assert.ErrorContains(t, err, "failed to connect to redis")
}

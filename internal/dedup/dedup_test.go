package dedup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFileStore_AddAndReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(dir, 0, zaptest.NewLogger(t))
	require.NoError(t, err)

	seen, err := store.IsSeen(ctx, "https://acme.example/jobs/1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.Add(ctx, []string{"https://acme.example/jobs/1", "https://acme.example/jobs/2"}))

	reloaded, err := NewFileStore(dir, 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	for _, u := range []string{"https://acme.example/jobs/1", "https://acme.example/jobs/2"} {
		seen, err := reloaded.IsSeen(ctx, u)
		require.NoError(t, err)
		assert.True(t, seen, u)
	}
}

func TestFileStore_ExpiredEntriesDropped(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	entries := []seenEntry{
		{URL: "https://acme.example/jobs/old", Timestamp: now.Add(-31 * 24 * time.Hour).UnixMilli()},
		{URL: "https://acme.example/jobs/new", Timestamp: now.Add(-time.Hour).UnixMilli()},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_postings.json"), data, 0644))

	store, err := NewFileStore(dir, DefaultTTL, zaptest.NewLogger(t))
	require.NoError(t, err)

	old, _ := store.IsSeen(context.Background(), "https://acme.example/jobs/old")
	fresh, _ := store.IsSeen(context.Background(), "https://acme.example/jobs/new")
	assert.False(t, old)
	assert.True(t, fresh)
}

func TestFileStore_CorruptCacheStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_postings.json"), []byte("{oops"), 0644))

	store, err := NewFileStore(dir, 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	seen, _ := store.IsSeen(context.Background(), "https://acme.example/jobs/1")
	assert.False(t, seen)
}

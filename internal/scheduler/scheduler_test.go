package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"edusign/internal/badge"
	"edusign/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type brokenSnapshotter struct{}

func (brokenSnapshotter) Snapshot(context.Context) ([]badge.Badge, bool, error) {
	return nil, false, errors.New("unreadable")
}

func TestBackup_WritesSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	store := badge.NewStore(storage.NewMemoryStore())
	if _, err := store.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	b := NewBackup(store, dir)
	b.now = func() time.Time { return time.Date(2025, 4, 2, 7, 9, 10, 123e6, time.UTC) }

	path, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "badges-20250402T070910.123Z.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var badges []badge.Badge
	require.NoError(t, json.Unmarshal(data, &badges))
	assert.Equal(t, badge.Seeds(), badges)
}

func TestBackup_SkipsUnreadableCollection(t *testing.T) {
	dir := t.TempDir()
	b := NewBackup(brokenSnapshotter{}, dir)

	_, err := b.Run(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackup_AfterClearDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	store := badge.NewStore(kv)
	_, _ = store.List(ctx)
	require.NoError(t, store.Clear(ctx))

	dir := t.TempDir()
	path, err := NewBackup(store, dir).Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = kv.Get(ctx, badge.CollectionKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New("@every 1h", nil)
	s.SetJob(func(context.Context) error { return nil })

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	s.Stop()
}

func TestScheduler_IdleWithoutSchedule(t *testing.T) {
	s := New("", nil)
	s.SetJob(func(context.Context) error { return nil })

	require.NoError(t, s.Start())
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New("not a schedule", nil)
	s.SetJob(func(context.Context) error { return nil })

	assert.Error(t, s.Start())
	s.Stop()
}

func TestScheduler_RunsJob(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a cron tick")
	}
	ran := make(chan struct{}, 1)
	s := New("@every 1s", nil)
	s.SetJob(func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

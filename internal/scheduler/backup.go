package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"edusign/internal/badge"
)

const backupTimeLayout = "20060102T150405.000Z"

// Snapshotter reads the persisted collection without seeding it.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]badge.Badge, bool, error)
}

// Backup writes snapshots of the badge collection into a directory.
type Backup struct {
	badges Snapshotter
	dir    string
	now    func() time.Time
}

func NewBackup(badges Snapshotter, dir string) *Backup {
	return &Backup{badges: badges, dir: dir, now: time.Now}
}

// Run writes one snapshot and returns its path. Nothing is written, and the
// path is empty, when no collection is persisted. An unreadable collection is
// not snapshotted, so a backup never records a degraded empty read.
func (b *Backup) Run(ctx context.Context) (string, error) {
	badges, found, err := b.badges.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read badges: %w", err)
	}
	if !found {
		return "", nil
	}

	data, err := json.MarshalIndent(badges, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode badges: %w", err)
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	path := filepath.Join(b.dir, "badges-"+b.now().UTC().Format(backupTimeLayout)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// Job adapts Run to the scheduler.
func (b *Backup) Job(ctx context.Context) error {
	_, err := b.Run(ctx)
	return err
}

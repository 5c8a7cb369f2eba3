package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/fretlog/fretlog/internal/services"
)

// SnapshotExporter produces a full-store snapshot.
type SnapshotExporter interface {
	Export() (*services.Snapshot, error)
}

// SnapshotWriter persists a snapshot and returns the written filename.
type SnapshotWriter interface {
	WriteSnapshot(snapshot any) (string, error)
}

// BackupSnapshotTask exports the whole store to a JSON backup file.
type BackupSnapshotTask struct{}

// Config returns the queue configuration for backup tasks.
func (t BackupSnapshotTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backup_snapshot",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BackupSnapshotProcessor creates a processor function for BackupSnapshotTask.
func BackupSnapshotProcessor(exporter SnapshotExporter, writer SnapshotWriter) backlite.QueueProcessor[BackupSnapshotTask] {
	return func(ctx context.Context, task BackupSnapshotTask) error {
		if exporter == nil || writer == nil {
			return fmt.Errorf("backup exporter or writer not configured")
		}

		snapshot, err := exporter.Export()
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}

		filename, err := writer.WriteSnapshot(snapshot)
		if err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}

		log.Printf("[TASK] Wrote backup snapshot %s", filename)
		return nil
	}
}

// NewBackupSnapshotQueue creates a backlite queue for backup tasks.
func NewBackupSnapshotQueue(exporter SnapshotExporter, writer SnapshotWriter) backlite.Queue {
	return backlite.NewQueue(BackupSnapshotProcessor(exporter, writer))
}

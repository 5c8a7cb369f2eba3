package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Writer persists snapshot exports as timestamped JSON files so a wiped
// database can be re-imported from disk.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// WriteSnapshot saves the snapshot as JSON under a unique filename and
// returns the filename.
func (w *Writer) WriteSnapshot(snapshot any) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("failed to ensure backup directory: %w", err)
	}

	filename := fmt.Sprintf("snapshot-%s-%s.json", time.Now().Format("20060102-150405"), uuid.New().String())
	path := filepath.Join(w.Dir, filename)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return filename, nil
}

func (w *Writer) ensureDir() error {
	if _, err := os.Stat(w.Dir); os.IsNotExist(err) {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}
	return nil
}

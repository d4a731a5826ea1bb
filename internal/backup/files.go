package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// FileName returns the backup file name for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("pocket_backup_%s.json", now.Format(model.DateLayout))
}

// ReadFile reads and decodes a backup document.
func ReadFile(path string) (model.AppData, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return model.AppData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	return Deserialize(raw)
}

// WriteFile serializes data into dir under FileName(now) and returns the
// written path. An existing file for the same day is overwritten.
func WriteFile(dir string, now time.Time, data model.AppData) (string, error) {
	out, err := Serialize(data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, out, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return path, nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pocketwatch/pocketwatch/internal/common"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

// JSONStore persists the full snapshot as a single JSON file, the direct
// analogue of the browser original's localStorage blob.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON file store at the given path.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &JSONStore{path: path}, nil
}

// Load reads the last-saved snapshot, seeding defaults on first run.
func (s *JSONStore) Load(ctx context.Context) (*model.AppData, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("no snapshot found, seeding defaults", "path", s.path)
		return DefaultAppData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var data model.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptSnapshot, err)
	}
	data.Normalize()

	slog.Debug("loaded snapshot",
		"path", s.path,
		"transactions", len(data.Transactions),
		"budgets", len(data.Budgets))
	return &data, nil
}

// Save writes the snapshot atomically: temp file in the same directory,
// then rename over the old snapshot.
func (s *JSONStore) Save(ctx context.Context, data *model.AppData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: data", ErrNilParameter)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pocketwatch-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}

// Close is a no-op; the file is not held open between operations.
func (s *JSONStore) Close() error {
	return nil
}

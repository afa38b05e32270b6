// Package storage provides the data persistence layer for the pocketwatch application.
package storage

import (
	"context"

	"github.com/pocketwatch/pocketwatch/internal/model"
)

// Store is the snapshot persistence contract the ledger writes through to.
//
// Load returns the last-saved snapshot, or the default seed on first run.
// Save persists the full snapshot; the ledger treats failures as
// best-effort and only logs them, so implementations should not rely on
// callers checking the error.
type Store interface {
	Load(ctx context.Context) (*model.AppData, error)
	Save(ctx context.Context, data *model.AppData) error
	Close() error
}

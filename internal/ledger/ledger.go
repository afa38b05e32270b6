// Package ledger holds the authoritative in-memory application state and
// all mutation primitives over it.
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/pocketwatch/pocketwatch/internal/storage"
)

// Ledger owns the four collections (transactions, budgets, categories,
// settings). Every mutation is atomic per call and writes through to the
// injected store; persistence failures are logged, never surfaced, so the
// in-memory state always wins.
//
// The ledger is constructed once at startup and passed explicitly to
// everything that needs it.
type Ledger struct {
	mu    sync.RWMutex
	store storage.Store
	data  model.AppData
}

// Open loads the last-saved snapshot (or the default seed) from the store
// and returns a ledger over it.
func Open(ctx context.Context, store storage.Store) (*Ledger, error) {
	data, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	data.Normalize()
	return &Ledger{store: store, data: *data}, nil
}

// persist writes the current state through to the store. Best-effort: a
// failing store must not fail the mutation that triggered it.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.Save(ctx, &l.data); err != nil {
		slog.Error("failed to persist snapshot", "error", err)
	}
}

func newID() string {
	return uuid.NewString()
}

// Snapshot returns a deep copy of the full application state.
func (l *Ledger) Snapshot() *model.AppData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data.Clone()
}

// Replace swaps in an entirely new application state (import). The payload
// is assumed well-formed; validation is the importer's responsibility.
func (l *Ledger) Replace(ctx context.Context, data *model.AppData) {
	l.mu.Lock()
	defer l.mu.Unlock()
	clone := data.Clone()
	clone.Normalize()
	l.data = *clone
	l.persist(ctx)
	slog.Info("replaced ledger state",
		"transactions", len(l.data.Transactions),
		"budgets", len(l.data.Budgets),
		"categories", len(l.data.Categories))
}

// Reset restores the default seed state, discarding everything.
func (l *Ledger) Reset(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = *storage.DefaultAppData()
	l.persist(ctx)
	slog.Info("reset ledger to defaults")
}

// Settings returns the current settings.
func (l *Ledger) Settings() model.Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data.Settings
}

// UpdateSettings replaces the settings singleton.
func (l *Ledger) UpdateSettings(ctx context.Context, settings model.Settings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data.Settings = settings
	l.persist(ctx)
}

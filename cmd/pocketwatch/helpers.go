package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pocketwatch/pocketwatch/internal/budget"
	"github.com/pocketwatch/pocketwatch/internal/common"
	"github.com/pocketwatch/pocketwatch/internal/config"
	"github.com/pocketwatch/pocketwatch/internal/ledger"
	"github.com/pocketwatch/pocketwatch/internal/storage"
)

// openStore builds the configured storage backend with proper path
// expansion. The JSON file store is the default; sqlite is opt-in.
func openStore(ctx context.Context) (storage.Store, error) {
	backend := viper.GetString("storage.backend")
	if backend == "" {
		backend = "json"
	}

	path := viper.GetString("storage.path")
	if path == "" {
		path = config.DefaultDataPath(backend)
	}
	path = config.ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	switch backend {
	case "json":
		return storage.NewJSONStore(path)
	case "sqlite":
		store, err := storage.NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, backend)
	}
}

// openLedger loads the snapshot and brings the monthly budgets up to date.
// The roll runs on every session start so a new month's budgets exist
// before any command looks at them.
func openLedger(ctx context.Context) (*ledger.Ledger, storage.Store, error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	l, err := ledger.Open(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, common.NewUserError("could not load your data; the file may be corrupted", err)
	}

	if created := budget.NewRoller(l).RollForward(ctx); created > 0 {
		slog.Info("rolled budgets into new month", "created", created)
	}

	return l, store, nil
}

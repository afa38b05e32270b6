package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketwatch/pocketwatch/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSQLiteStore_LoadSeedsDefaultsOnFirstRun(t *testing.T) {
	store := newTestSQLiteStore(t)

	data, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, data.Transactions)
	assert.Empty(t, data.Budgets)
	assert.Len(t, data.Categories, 12)
	assert.Equal(t, "USD", data.Settings.Currency)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	in := &model.AppData{
		Transactions: []model.Transaction{{
			ID:          "t1",
			Type:        model.TypeExpense,
			Category:    "Food & Dining",
			Description: "groceries",
			Notes:       "weekly shop",
			Amount:      decimal.RequireFromString("87.23"),
			Date:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		}, {
			ID:       "t2",
			Type:     model.TypeIncome,
			Category: "Salary",
			Amount:   decimal.RequireFromString("2500.00"),
			Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}},
		Budgets: []model.Budget{{
			ID:         "b1",
			Name:       "Groceries",
			Categories: []string{"Food & Dining", "Shopping"},
			Amount:     decimal.RequireFromString("300.00"),
			Period:     model.PeriodMonthly,
			StartDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}, {
			ID:         "b2",
			Name:       "Plan",
			Categories: []string{"Entertainment"},
			Amount:     decimal.RequireFromString("100.00"),
			Period:     model.PeriodMonthly,
			IsTemplate: true,
		}},
		Categories: []model.Category{{
			ID:    "c1",
			Name:  "Food & Dining",
			Type:  model.CategoryTypeExpense,
			Color: "#FF5722",
			Icon:  "utensils",
		}},
		Settings: model.Settings{Currency: "EUR", FirstDayOfMonth: 15, Theme: "dark"},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, out.Transactions, 2)
	byID := map[string]model.Transaction{}
	for _, txn := range out.Transactions {
		byID[txn.ID] = txn
	}
	assert.True(t, byID["t1"].Amount.Equal(decimal.RequireFromString("87.23")))
	assert.Equal(t, "weekly shop", byID["t1"].Notes)
	assert.Equal(t, model.TypeIncome, byID["t2"].Type)

	require.Len(t, out.Budgets, 2)
	budgets := map[string]model.Budget{}
	for _, b := range out.Budgets {
		budgets[b.ID] = b
	}
	assert.Equal(t, []string{"Food & Dining", "Shopping"}, budgets["b1"].Categories)
	assert.True(t, budgets["b2"].IsTemplate)

	require.Len(t, out.Categories, 1)
	assert.Equal(t, "#FF5722", out.Categories[0].Color)
	assert.Equal(t, "EUR", out.Settings.Currency)
	assert.Equal(t, 15, out.Settings.FirstDayOfMonth)
}

func TestSQLiteStore_SaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	first := &model.AppData{
		Transactions: []model.Transaction{{
			ID:       "t1",
			Type:     model.TypeExpense,
			Category: "Food & Dining",
			Amount:   decimal.NewFromInt(10),
			Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}},
		Settings: model.Settings{Currency: "USD", FirstDayOfMonth: 1, Theme: "system"},
	}
	require.NoError(t, store.Save(ctx, first))

	second := &model.AppData{
		Settings: model.Settings{Currency: "USD", FirstDayOfMonth: 1, Theme: "system"},
	}
	require.NoError(t, store.Save(ctx, second))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.Transactions, "save replaces, never merges")
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}

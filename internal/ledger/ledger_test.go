package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/pocketwatch/pocketwatch/internal/storage"
)

func openTestLedger(t *testing.T, path string) *Ledger {
	t.Helper()
	store, err := storage.NewJSONStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	l, err := Open(context.Background(), store)
	require.NoError(t, err)
	return l
}

func TestOpen_SeedsDefaults(t *testing.T) {
	l := openTestLedger(t, filepath.Join(t.TempDir(), "data.json"))

	assert.Empty(t, l.Transactions())
	assert.Empty(t, l.Budgets())
	assert.Len(t, l.Categories(), 12, "stock category set")
	assert.Equal(t, "USD", l.Settings().Currency)
	assert.Equal(t, 1, l.Settings().FirstDayOfMonth)
}

func TestTransactionCRUD(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, filepath.Join(t.TempDir(), "data.json"))
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	created := l.AddTransaction(ctx, model.Transaction{
		Type:     model.TypeExpense,
		Category: "Food & Dining",
		Amount:   decimal.RequireFromString("42.17"),
		Date:     day,
	})
	require.NotEmpty(t, created.ID)

	got, ok := l.Transaction(created.ID)
	require.True(t, ok)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("42.17")))

	got.Description = "lunch"
	l.UpdateTransaction(ctx, got)
	updated, _ := l.Transaction(created.ID)
	assert.Equal(t, "lunch", updated.Description)

	l.DeleteTransaction(ctx, created.ID)
	_, ok = l.Transaction(created.ID)
	assert.False(t, ok)
}

func TestUpdateAndDeleteUnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, filepath.Join(t.TempDir(), "data.json"))

	l.UpdateTransaction(ctx, model.Transaction{ID: "ghost", Type: model.TypeExpense})
	l.DeleteTransaction(ctx, "ghost")
	l.UpdateBudget(ctx, model.Budget{ID: "ghost"})
	l.DeleteBudget(ctx, "ghost")
	l.UpdateCategory(ctx, model.Category{ID: "ghost"})
	l.DeleteCategory(ctx, "ghost")

	assert.Empty(t, l.Transactions())
	assert.Empty(t, l.Budgets())
	assert.Len(t, l.Categories(), 12)
}

func TestAddBudget_NormalizesLegacyShape(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, filepath.Join(t.TempDir(), "data.json"))

	created := l.AddBudget(ctx, model.Budget{
		LegacyCategory: "Food & Dining",
		Amount:         decimal.NewFromInt(300),
		Period:         model.PeriodMonthly,
	})

	assert.Equal(t, []string{"Food & Dining"}, created.Categories)
	assert.Empty(t, created.LegacyCategory)
}

func TestWriteThroughSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	l := openTestLedger(t, path)
	txn := l.AddTransaction(ctx, model.Transaction{
		Type:     model.TypeIncome,
		Category: "Salary",
		Amount:   decimal.RequireFromString("2500.00"),
		Date:     day,
	})
	b := l.AddBudget(ctx, model.Budget{
		Name:       "Groceries",
		Categories: []string{"Food & Dining"},
		Amount:     decimal.NewFromInt(300),
		Period:     model.PeriodMonthly,
		StartDate:  day,
	})

	reopened := openTestLedger(t, path)
	gotTxn, ok := reopened.Transaction(txn.ID)
	require.True(t, ok)
	assert.True(t, gotTxn.Amount.Equal(decimal.RequireFromString("2500.00")), "amount survives exactly")

	gotBudget, ok := reopened.Budget(b.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"Food & Dining"}, gotBudget.Categories)
}

func TestSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, filepath.Join(t.TempDir(), "data.json"))
	l.AddBudget(ctx, model.Budget{
		Categories: []string{"Food & Dining"},
		Amount:     decimal.NewFromInt(300),
		Period:     model.PeriodMonthly,
	})

	snap := l.Snapshot()
	snap.Budgets[0].Categories[0] = "tampered"
	snap.Settings.Currency = "XXX"

	assert.Equal(t, "Food & Dining", l.Budgets()[0].Categories[0])
	assert.Equal(t, "USD", l.Settings().Currency)
}

func TestReplaceAndReset(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, filepath.Join(t.TempDir(), "data.json"))

	l.Replace(ctx, &model.AppData{
		Transactions: []model.Transaction{{
			ID:       "t1",
			Type:     model.TypeExpense,
			Category: "Food & Dining",
			Amount:   decimal.NewFromInt(5),
			Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}},
		Budgets:    []model.Budget{{ID: "b1", LegacyCategory: "Food & Dining", Amount: decimal.NewFromInt(100), Period: model.PeriodMonthly}},
		Categories: []model.Category{{ID: "c1", Name: "Food & Dining", Type: model.CategoryTypeExpense}},
		Settings:   model.Settings{Currency: "EUR", FirstDayOfMonth: 15, Theme: "dark"},
	})

	assert.Len(t, l.Transactions(), 1)
	assert.Equal(t, "EUR", l.Settings().Currency)
	assert.Equal(t, []string{"Food & Dining"}, l.Budgets()[0].Categories, "imported budgets are normalized")

	l.Reset(ctx)
	assert.Empty(t, l.Transactions())
	assert.Empty(t, l.Budgets())
	assert.Len(t, l.Categories(), 12)
	assert.Equal(t, "USD", l.Settings().Currency)
}

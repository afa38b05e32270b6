package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketwatch/pocketwatch/internal/model"
)

func expense(category, amount string, date time.Time) model.Transaction {
	return model.Transaction{
		ID:       category + "-" + amount,
		Type:     model.TypeExpense,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

func income(category, amount string, date time.Time) model.Transaction {
	t := expense(category, amount, date)
	t.Type = model.TypeIncome
	return t
}

func TestMeasure(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		budget         model.Budget
		transactions   []model.Transaction
		wantSpent      string
		wantRemaining  string
		wantPercentage float64
		wantOver       bool
		wantFinished   bool
	}{
		{
			name: "partial spend",
			budget: model.Budget{
				Categories: []string{"Food & Dining"},
				Amount:     decimal.NewFromInt(300),
			},
			transactions: []model.Transaction{
				expense("Food & Dining", "120.50", day),
				expense("Food & Dining", "29.50", day),
			},
			wantSpent:      "150",
			wantRemaining:  "150",
			wantPercentage: 50,
		},
		{
			name: "income in a matching category never counts",
			budget: model.Budget{
				Categories: []string{"Food & Dining"},
				Amount:     decimal.NewFromInt(300),
			},
			transactions: []model.Transaction{
				expense("Food & Dining", "100", day),
				income("Food & Dining", "500", day),
			},
			wantSpent:      "100",
			wantRemaining:  "200",
			wantPercentage: 33.33333333333333,
		},
		{
			name: "other categories never count",
			budget: model.Budget{
				Categories: []string{"Food & Dining"},
				Amount:     decimal.NewFromInt(300),
			},
			transactions: []model.Transaction{
				expense("Transportation", "100", day),
			},
			wantSpent:      "0",
			wantRemaining:  "300",
			wantPercentage: 0,
		},
		{
			name: "multi category sums across the set",
			budget: model.Budget{
				Categories: []string{"Food & Dining", "Shopping"},
				Amount:     decimal.NewFromInt(200),
			},
			transactions: []model.Transaction{
				expense("Food & Dining", "60", day),
				expense("Shopping", "40", day),
				expense("Entertainment", "999", day),
			},
			wantSpent:      "100",
			wantRemaining:  "100",
			wantPercentage: 50,
		},
		{
			name: "over budget clamps percentage but not remaining",
			budget: model.Budget{
				Categories: []string{"Food & Dining"},
				Amount:     decimal.NewFromInt(100),
			},
			transactions: []model.Transaction{
				expense("Food & Dining", "150", day),
			},
			wantSpent:      "150",
			wantRemaining:  "-50",
			wantPercentage: 100,
			wantOver:       true,
		},
		{
			name: "exactly finished",
			budget: model.Budget{
				Categories: []string{"Food & Dining"},
				Amount:     decimal.NewFromInt(100),
			},
			transactions: []model.Transaction{
				expense("Food & Dining", "100", day),
			},
			wantSpent:      "100",
			wantRemaining:  "0",
			wantPercentage: 100,
			wantFinished:   true,
		},
		{
			name: "zero amount budget reports zero percent",
			budget: model.Budget{
				Categories: []string{"Food & Dining"},
			},
			transactions: []model.Transaction{
				expense("Food & Dining", "10", day),
			},
			wantSpent:      "10",
			wantRemaining:  "-10",
			wantPercentage: 0,
			wantOver:       true,
		},
		{
			name: "no transactions",
			budget: model.Budget{
				Categories: []string{"Food & Dining"},
				Amount:     decimal.NewFromInt(300),
			},
			wantSpent:      "0",
			wantRemaining:  "300",
			wantPercentage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Measure(tt.budget, tt.transactions)

			assert.True(t, got.Spent.Equal(decimal.RequireFromString(tt.wantSpent)),
				"spent = %s, want %s", got.Spent, tt.wantSpent)
			assert.True(t, got.Remaining.Equal(decimal.RequireFromString(tt.wantRemaining)),
				"remaining = %s, want %s", got.Remaining, tt.wantRemaining)
			assert.InDelta(t, tt.wantPercentage, got.Percentage, 0.0001)
			assert.Equal(t, tt.wantOver, got.OverBudget)
			assert.Equal(t, tt.wantFinished, got.Finished)

			// Over budget and finished are mutually exclusive.
			assert.False(t, got.OverBudget && got.Finished)
		})
	}
}

func TestMeasure_DeletedCategoryStopsCounting(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	b := model.Budget{
		Categories: []string{"Food & Dining"},
		Amount:     decimal.NewFromInt(100),
	}
	txns := []model.Transaction{expense("Food & Dining", "40", day)}

	before := Measure(b, txns)
	require.True(t, before.Spent.Equal(decimal.NewFromInt(40)))

	// Simulating category deletion: the budget's set no longer holds the
	// name, but the transaction keeps it.
	b.Categories = nil
	after := Measure(b, txns)
	assert.True(t, after.Spent.IsZero())
	assert.True(t, after.Remaining.Equal(decimal.NewFromInt(100)))
}

func TestMatchingTransactions(t *testing.T) {
	older := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	b := model.Budget{Categories: []string{"Food & Dining"}, Amount: decimal.NewFromInt(100)}
	txns := []model.Transaction{
		expense("Food & Dining", "10", older),
		income("Food & Dining", "999", newer),
		expense("Food & Dining", "20", newer),
		expense("Transportation", "30", newer),
	}

	got := MatchingTransactions(b, txns)
	require.Len(t, got, 2)
	assert.Equal(t, newer, got[0].Date, "newest first")
	assert.Equal(t, older, got[1].Date)
}

func TestForMonth(t *testing.T) {
	aug := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	jul := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	budgets := []model.Budget{
		{ID: "aug-food", StartDate: aug, Categories: []string{"Food & Dining"}, Amount: decimal.NewFromInt(100)},
		{ID: "aug-fun", StartDate: aug, Categories: []string{"Entertainment"}, Amount: decimal.NewFromInt(100)},
		{ID: "jul-food", StartDate: jul, Categories: []string{"Food & Dining"}, Amount: decimal.NewFromInt(100)},
		{ID: "tpl", StartDate: aug, Categories: []string{"Food & Dining"}, Amount: decimal.NewFromInt(100), IsTemplate: true},
	}
	txns := []model.Transaction{
		expense("Food & Dining", "80", day),
		expense("Entertainment", "20", day),
	}

	got := ForMonth(budgets, txns, aug)
	require.Len(t, got, 2, "only live budgets of the month")
	assert.Equal(t, "aug-food", got[0].Budget.ID, "most consumed first")
	assert.Equal(t, "aug-fun", got[1].Budget.ID)
}

func TestTemplates(t *testing.T) {
	budgets := []model.Budget{
		{ID: "live"},
		{ID: "tpl-1", IsTemplate: true},
		{ID: "tpl-2", IsTemplate: true},
	}

	got := Templates(budgets)
	require.Len(t, got, 2)
	assert.Equal(t, "tpl-1", got[0].ID)
	assert.Equal(t, "tpl-2", got[1].ID)
}

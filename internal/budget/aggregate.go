// Package budget implements the budget math: aggregation of spending
// against budgets, the monthly roll of planned templates, and the manual
// balancing transfer between budgets.
package budget

import (
	"sort"
	"time"

	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/shopspring/decimal"
)

// Progress is the measured state of one budget against the transaction set.
type Progress struct {
	// Spent is the sum of matching expense amounts.
	Spent decimal.Decimal
	// Remaining is amount minus spent. Signed: negative means over budget.
	// Never clamped.
	Remaining decimal.Decimal
	// Percentage is spent/amount*100 clamped to [0,100] for display. A
	// zero-amount budget reports 0 rather than dividing by zero.
	Percentage float64
	// OverBudget is true when remaining is negative.
	OverBudget bool
	// Finished is true when remaining is exactly zero: fully spent, not over.
	Finished bool
}

// Measure computes a budget's progress. Only expense transactions whose
// category is in the budget's category set count toward spent; income
// never does, regardless of category.
func Measure(b model.Budget, transactions []model.Transaction) Progress {
	set := make(map[string]struct{}, len(b.Categories))
	for _, name := range b.Categories {
		set[name] = struct{}{}
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Type != model.TypeExpense {
			continue
		}
		if _, ok := set[t.Category]; !ok {
			continue
		}
		spent = spent.Add(t.Amount)
	}

	remaining := b.Amount.Sub(spent)

	var percentage float64
	if !b.Amount.IsZero() {
		percentage = spent.Div(b.Amount).InexactFloat64() * 100
		if percentage < 0 {
			percentage = 0
		}
		if percentage > 100 {
			percentage = 100
		}
	}

	return Progress{
		Spent:      spent,
		Remaining:  remaining,
		Percentage: percentage,
		OverBudget: remaining.IsNegative(),
		Finished:   remaining.IsZero(),
	}
}

// MatchingTransactions returns the expense transactions a budget's spent
// figure is built from, newest first.
func MatchingTransactions(b model.Budget, transactions []model.Transaction) []model.Transaction {
	set := make(map[string]struct{}, len(b.Categories))
	for _, name := range b.Categories {
		set[name] = struct{}{}
	}

	var out []model.Transaction
	for _, t := range transactions {
		if t.Type != model.TypeExpense {
			continue
		}
		if _, ok := set[t.Category]; !ok {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Measured pairs a budget with its progress for list views.
type Measured struct {
	Budget   model.Budget
	Progress Progress
}

// ForMonth returns the live (non-template) budgets whose start date falls
// in the given month, each measured, sorted by percentage descending.
func ForMonth(budgets []model.Budget, transactions []model.Transaction, month time.Time) []Measured {
	key := month.Format("2006-01")
	var out []Measured
	for _, b := range budgets {
		if b.IsTemplate {
			continue
		}
		if b.StartDate.Format("2006-01") != key {
			continue
		}
		out = append(out, Measured{Budget: b, Progress: Measure(b, transactions)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Progress.Percentage > out[j].Progress.Percentage
	})
	return out
}

// Templates returns the planned budget templates.
func Templates(budgets []model.Budget) []model.Budget {
	var out []model.Budget
	for _, b := range budgets {
		if b.IsTemplate {
			out = append(out, b)
		}
	}
	return out
}

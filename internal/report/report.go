// Package report computes the read-only aggregate views: the dashboard
// balance, monthly cash-flow series, and category breakdowns.
package report

import (
	"sort"
	"time"

	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/shopspring/decimal"
)

// CashFlow is an income/expense/net triple over some window.
type CashFlow struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// PeriodWindow returns the [start, end) window of the current "month" as
// the dashboard defines it: starting on the configured first day of the
// month. If today is before that day, the window began last month. This
// offset notion is distinct from the roller's calendar months and the two
// must not be unified.
func PeriodWindow(now time.Time, firstDay int) (time.Time, time.Time) {
	if firstDay < 1 || firstDay > 31 {
		firstDay = 1
	}
	year, month := now.Year(), now.Month()
	if now.Day() < firstDay {
		month--
	}
	// time.Date normalizes out-of-range days (Feb 30 -> Mar 2), matching
	// the original's Date arithmetic.
	start := time.Date(year, month, firstDay, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start, end
}

// Flow sums income and expenses over [start, end).
func Flow(transactions []model.Transaction, start, end time.Time) CashFlow {
	income, expenses := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if t.Date.Before(start) || !t.Date.Before(end) {
			continue
		}
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.Amount)
		case model.TypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return CashFlow{Income: income, Expenses: expenses, Net: income.Sub(expenses)}
}

// MonthFlow is one month's cash flow in a series.
type MonthFlow struct {
	Month time.Time
	Flow  CashFlow
}

// MonthlySeries returns the trailing months' cash flows, oldest first,
// using true calendar months.
func MonthlySeries(transactions []model.Transaction, now time.Time, months int) []MonthFlow {
	if months <= 0 {
		return nil
	}
	out := make([]MonthFlow, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		out = append(out, MonthFlow{Month: start, Flow: Flow(transactions, start, end)})
	}
	return out
}

// NetBalance is total income minus total expenses across all time.
func NetBalance(transactions []model.Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case model.TypeIncome:
			net = net.Add(t.Amount)
		case model.TypeExpense:
			net = net.Sub(t.Amount)
		}
	}
	return net
}

// CategoryTotal is one category's share of a breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategoryTotals groups transactions of one type by category name over
// [start, end), largest first. Categories are matched by name only, so a
// deleted category's transactions still show up under its old name.
func CategoryTotals(transactions []model.Transaction, typ model.TransactionType, start, end time.Time) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != typ {
			continue
		}
		if t.Date.Before(start) || !t.Date.Before(end) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		out = append(out, CategoryTotal{Category: name, Total: total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

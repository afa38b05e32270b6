package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the window a budget's amount applies to.
type BudgetPeriod string

const (
	// PeriodMonthly anchors a budget to one calendar month.
	PeriodMonthly BudgetPeriod = "monthly"
	// PeriodYearly anchors a budget to one calendar year.
	PeriodYearly BudgetPeriod = "yearly"
)

// Budget is an allocation of money against one or more expense categories.
//
// A budget with IsTemplate set is a planned, recurring definition: it is
// never spent against directly, only copied into live monthly budgets by
// the roller. Only live budgets have a period-meaningful StartDate.
type Budget struct {
	StartDate time.Time `json:"startDate"`
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`

	// Categories is the canonical category set. LegacyCategory carries the
	// old single-category shape on the wire; Normalize folds it in.
	Categories     []string `json:"categories,omitempty"`
	LegacyCategory string   `json:"category,omitempty"`

	Notes      string          `json:"notes,omitempty"`
	Period     BudgetPeriod    `json:"period"`
	Amount     decimal.Decimal `json:"amount"`
	IsTemplate bool            `json:"isTemplate"`
}

// Normalize collapses the two historical budget shapes into one: if the
// categories list is empty, the single legacy category becomes the list.
// After normalization consumers only ever read Categories.
func (b *Budget) Normalize() {
	if len(b.Categories) == 0 && b.LegacyCategory != "" {
		b.Categories = []string{b.LegacyCategory}
	}
	b.LegacyCategory = ""
}

// DisplayName returns the budget's name, falling back to its categories.
func (b *Budget) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return strings.Join(b.Categories, ", ")
}

// Validate checks that a budget is well formed at creation time.
func (b *Budget) Validate() error {
	if len(b.Categories) == 0 && b.LegacyCategory == "" {
		return fmt.Errorf("budget needs at least one category")
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("budget amount must be positive, got %s", b.Amount)
	}
	switch b.Period {
	case PeriodMonthly, PeriodYearly:
	default:
		return fmt.Errorf("unknown budget period %q", b.Period)
	}
	return nil
}

package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money leaving the ledger from money entering it.
type TransactionType string

const (
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "expense"
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
)

// Transaction is a single recorded income or expense entry.
//
// Category is a category *name*, not an id: a soft reference. Deleting a
// category never touches the transactions that name it.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
}

// Validate checks that a transaction is well formed enough to store. An
// empty category is allowed: imports produce uncategorized rows, and the
// category reference is soft anyway.
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must not be negative, got %s", t.Amount)
	}
	switch t.Type {
	case TypeExpense, TypeIncome:
	default:
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	return nil
}

package ledger

import (
	"context"
	"log/slog"

	"github.com/pocketwatch/pocketwatch/internal/model"
)

// Transactions returns a copy of all transactions.
func (l *Ledger) Transactions() []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Transaction, len(l.data.Transactions))
	copy(out, l.data.Transactions)
	return out
}

// Transaction looks up a transaction by id.
func (l *Ledger) Transaction(id string) (model.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range l.data.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// AddTransaction stores a new transaction under a fresh id and returns it.
func (l *Ledger) AddTransaction(ctx context.Context, t model.Transaction) model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	t.ID = newID()
	l.data.Transactions = append(l.data.Transactions, t)
	l.persist(ctx)
	return t
}

// AddTransactions appends a batch of transactions (bulk import), assigning
// fresh ids, with a single write-through at the end.
func (l *Ledger) AddTransactions(ctx context.Context, txns []model.Transaction) []model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	added := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		t.ID = newID()
		l.data.Transactions = append(l.data.Transactions, t)
		added = append(added, t)
	}
	l.persist(ctx)
	return added
}

// UpdateTransaction replaces the transaction with the same id. Updating a
// missing id is a silent no-op.
func (l *Ledger) UpdateTransaction(ctx context.Context, t model.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.data.Transactions {
		if l.data.Transactions[i].ID == t.ID {
			l.data.Transactions[i] = t
			l.persist(ctx)
			return
		}
	}
	slog.Debug("update for unknown transaction ignored", "id", t.ID)
}

// DeleteTransaction removes a transaction by id. Deleting a missing id is
// a silent no-op.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.data.Transactions {
		if l.data.Transactions[i].ID == id {
			l.data.Transactions = append(l.data.Transactions[:i], l.data.Transactions[i+1:]...)
			l.persist(ctx)
			return
		}
	}
	slog.Debug("delete for unknown transaction ignored", "id", id)
}

package ledger

import (
	"context"
	"log/slog"

	"github.com/pocketwatch/pocketwatch/internal/model"
)

// Budgets returns a copy of all budgets, templates included.
func (l *Ledger) Budgets() []model.Budget {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Budget, len(l.data.Budgets))
	copy(out, l.data.Budgets)
	return out
}

// Budget looks up a budget by id.
func (l *Ledger) Budget(id string) (model.Budget, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.data.Budgets {
		if b.ID == id {
			return b, true
		}
	}
	return model.Budget{}, false
}

// AddBudget stores a new budget under a fresh id and returns it.
func (l *Ledger) AddBudget(ctx context.Context, b model.Budget) model.Budget {
	l.mu.Lock()
	defer l.mu.Unlock()
	b.ID = newID()
	b.Normalize()
	l.data.Budgets = append(l.data.Budgets, b)
	l.persist(ctx)
	return b
}

// UpdateBudget replaces the budget with the same id; no-op when absent.
func (l *Ledger) UpdateBudget(ctx context.Context, b model.Budget) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b.Normalize()
	for i := range l.data.Budgets {
		if l.data.Budgets[i].ID == b.ID {
			l.data.Budgets[i] = b
			l.persist(ctx)
			return
		}
	}
	slog.Debug("update for unknown budget ignored", "id", b.ID)
}

// UpdateBudgets replaces several budgets in one critical section with a
// single write-through. The balancer uses this so a transfer's two amount
// changes land together or not at all.
func (l *Ledger) UpdateBudgets(ctx context.Context, budgets ...model.Budget) {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := false
	for _, b := range budgets {
		b.Normalize()
		for i := range l.data.Budgets {
			if l.data.Budgets[i].ID == b.ID {
				l.data.Budgets[i] = b
				changed = true
				break
			}
		}
	}
	if changed {
		l.persist(ctx)
	}
}

// DeleteBudget removes a budget by id; no-op when absent.
func (l *Ledger) DeleteBudget(ctx context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.data.Budgets {
		if l.data.Budgets[i].ID == id {
			l.data.Budgets = append(l.data.Budgets[:i], l.data.Budgets[i+1:]...)
			l.persist(ctx)
			return
		}
	}
	slog.Debug("delete for unknown budget ignored", "id", id)
}

package ledger

import (
	"context"
	"log/slog"

	"github.com/pocketwatch/pocketwatch/internal/model"
)

// Categories returns a copy of all categories.
func (l *Ledger) Categories() []model.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Category, len(l.data.Categories))
	copy(out, l.data.Categories)
	return out
}

// Category looks up a category by id.
func (l *Ledger) Category(id string) (model.Category, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, c := range l.data.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryByName looks up a category by its display name. First match
// wins; name uniqueness is assumed, not enforced.
func (l *Ledger) CategoryByName(name string) (model.Category, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, c := range l.data.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return model.Category{}, false
}

// AddCategory stores a new category under a fresh id and returns it.
func (l *Ledger) AddCategory(ctx context.Context, c model.Category) model.Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	c.ID = newID()
	l.data.Categories = append(l.data.Categories, c)
	l.persist(ctx)
	return c
}

// UpdateCategory replaces the category with the same id; no-op when absent.
func (l *Ledger) UpdateCategory(ctx context.Context, c model.Category) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.data.Categories {
		if l.data.Categories[i].ID == c.ID {
			l.data.Categories[i] = c
			l.persist(ctx)
			return
		}
	}
	slog.Debug("update for unknown category ignored", "id", c.ID)
}

// DeleteCategory removes a category by id; no-op when absent. There is no
// cascade: transactions and budgets keep referencing the name.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.data.Categories {
		if l.data.Categories[i].ID == id {
			l.data.Categories = append(l.data.Categories[:i], l.data.Categories[i+1:]...)
			l.persist(ctx)
			return
		}
	}
	slog.Debug("delete for unknown category ignored", "id", id)
}

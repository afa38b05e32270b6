package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/pocketwatch/pocketwatch/internal/ledger"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

// Roller instantiates planned budget templates into live monthly budgets.
//
// It works on true calendar months. The firstDayOfMonth setting shifts
// only the dashboard balance window and is deliberately ignored here; the
// two month notions are separate concepts.
type Roller struct {
	ledger *ledger.Ledger
	now    func() time.Time
}

// NewRoller creates a roller over the given ledger.
func NewRoller(l *ledger.Ledger) *Roller {
	return &Roller{ledger: l, now: time.Now}
}

// RollForward checks whether the current calendar month already has live
// budgets and, if not, creates one live budget per template anchored at
// the first day of the month. Idempotent within a month: calling it again
// creates nothing. Runs once per session load; a session kept open across
// a month boundary rolls on the next load, not on a timer.
func (r *Roller) RollForward(ctx context.Context) int {
	now := r.now()
	monthKey := now.Format("2006-01")
	budgets := r.ledger.Budgets()

	for _, b := range budgets {
		if !b.IsTemplate && b.StartDate.Format("2006-01") == monthKey {
			return 0
		}
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	created := r.instantiate(ctx, budgets, firstOfMonth)
	if created > 0 {
		slog.Info("rolled planned budgets into new month",
			"month", monthKey, "created", created)
	}
	return created
}

// ResetToPlan is the manual, destructive variant: it deletes every live
// budget and re-creates one instance per template anchored at today, not
// the first of the month. Any edits made to live budgets since the last
// roll are discarded.
func (r *Roller) ResetToPlan(ctx context.Context) int {
	now := r.now()
	budgets := r.ledger.Budgets()

	for _, b := range budgets {
		if !b.IsTemplate {
			r.ledger.DeleteBudget(ctx, b.ID)
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	created := r.instantiate(ctx, budgets, today)
	slog.Info("reset live budgets to plan", "created", created)
	return created
}

// instantiate copies every template into a live budget anchored at start.
func (r *Roller) instantiate(ctx context.Context, budgets []model.Budget, start time.Time) int {
	created := 0
	for _, tpl := range budgets {
		if !tpl.IsTemplate {
			continue
		}
		instance := tpl
		instance.IsTemplate = false
		instance.StartDate = start
		instance.Categories = make([]string, len(tpl.Categories))
		copy(instance.Categories, tpl.Categories)
		r.ledger.AddBudget(ctx, instance)
		created++
	}
	return created
}

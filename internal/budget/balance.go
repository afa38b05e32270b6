package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketwatch/pocketwatch/internal/ledger"
	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/shopspring/decimal"
)

// Balancing errors. All of them reject the transfer before any mutation,
// so a failed Balance never leaves the ledger half-updated.
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrSameBudget     = errors.New("donor and recipient must be different budgets")
	ErrTemplateBudget = errors.New("planned budget templates cannot be balanced")
	ErrNotOverBudget  = errors.New("recipient budget is not over budget")
	ErrDonorShortfall = errors.New("donor budget cannot cover the transfer")
)

// Transfer describes a completed balancing transfer.
type Transfer struct {
	Recipient model.Budget
	Donor     model.Budget
	Amount    decimal.Decimal
}

// Balance moves allocation from an under-spent donor budget onto an
// over-spent recipient, covering the recipient's full overage. There is no
// partial transfer: the amount is always abs(recipient remaining). The
// donor's amount may not go negative; if it would, the transfer is
// rejected and neither budget changes. On success both amount updates are
// applied as one ledger write.
func Balance(ctx context.Context, l *ledger.Ledger, recipientID, donorID string) (Transfer, error) {
	if recipientID == donorID {
		return Transfer{}, ErrSameBudget
	}

	recipient, ok := l.Budget(recipientID)
	if !ok {
		return Transfer{}, fmt.Errorf("%w: recipient %s", ErrBudgetNotFound, recipientID)
	}
	donor, ok := l.Budget(donorID)
	if !ok {
		return Transfer{}, fmt.Errorf("%w: donor %s", ErrBudgetNotFound, donorID)
	}
	if recipient.IsTemplate || donor.IsTemplate {
		return Transfer{}, ErrTemplateBudget
	}

	transactions := l.Transactions()
	progress := Measure(recipient, transactions)
	if !progress.OverBudget {
		return Transfer{}, ErrNotOverBudget
	}

	amount := progress.Remaining.Neg()
	if donor.Amount.Sub(amount).IsNegative() {
		return Transfer{}, fmt.Errorf("%w: needs %s, donor has %s",
			ErrDonorShortfall, amount, donor.Amount)
	}

	donor.Amount = donor.Amount.Sub(amount)
	recipient.Amount = recipient.Amount.Add(amount)
	l.UpdateBudgets(ctx, donor, recipient)

	slog.Info("balanced budgets",
		"recipient", recipient.DisplayName(),
		"donor", donor.DisplayName(),
		"amount", amount)

	return Transfer{Recipient: recipient, Donor: donor, Amount: amount}, nil
}

// DonorCandidates lists the live budgets able to donate toward a
// recipient: some allocation left (remaining > 0), not the recipient
// itself, and not a template.
func DonorCandidates(budgets []model.Budget, transactions []model.Transaction, recipientID string) []Measured {
	var out []Measured
	for _, b := range budgets {
		if b.IsTemplate || b.ID == recipientID {
			continue
		}
		progress := Measure(b, transactions)
		if progress.Remaining.IsPositive() {
			out = append(out, Measured{Budget: b, Progress: progress})
		}
	}
	return out
}

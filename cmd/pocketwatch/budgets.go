package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/budget"
	"github.com/pocketwatch/pocketwatch/internal/cli"
	"github.com/pocketwatch/pocketwatch/internal/ledger"
	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/pocketwatch/pocketwatch/internal/tui"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage monthly budgets",
		Long:  `List, inspect, and adjust the live monthly budgets, including balancing an overspent budget from another's slack.`,
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(showBudgetCmd())
	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(updateBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())
	cmd.AddCommand(balanceBudgetCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets for a month",
		Long:  `Show each budget's spending progress for the current month, most consumed first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			at := time.Now()
			if month != "" {
				at, err = time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month, want YYYY-MM: %w", err)
				}
			}

			measured := budget.ForMonth(l.Budgets(), l.Transactions(), at)
			if len(measured) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No budgets for %s. Use 'pocketwatch budgets add' or 'pocketwatch plan'.", at.Format("2006-01"))))
				return nil
			}

			currency := l.Settings().Currency
			fmt.Println(cli.FormatTitle("Budgets " + at.Format("January 2006")))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			for _, m := range measured {
				status := ""
				switch {
				case m.Progress.OverBudget:
					status = cli.ErrorStyle.Render("over budget")
				case m.Progress.Finished:
					status = cli.WarningStyle.Render("finished")
				}
				fmt.Fprintf(w, "%s\t%s\t%s / %s\t%s\t%s\n",
					cli.BoldStyle.Render(m.Budget.DisplayName()),
					cli.RenderProgressBar(m.Progress.Percentage, 20),
					cli.FormatMoney(m.Progress.Spent, currency),
					cli.FormatMoney(m.Budget.Amount, currency),
					status,
					cli.SubtleStyle.Render(m.Budget.ID))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")

	return cmd
}

func showBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one budget with its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			b, ok := l.Budget(args[0])
			if !ok {
				return fmt.Errorf("budget %q not found", args[0])
			}

			txns := l.Transactions()
			progress := budget.Measure(b, txns)
			currency := l.Settings().Currency

			var lines []string
			lines = append(lines,
				fmt.Sprintf("Amount:    %s", cli.FormatMoney(b.Amount, currency)),
				fmt.Sprintf("Spent:     %s", cli.FormatMoney(progress.Spent, currency)),
				fmt.Sprintf("Remaining: %s", cli.FormatMoney(progress.Remaining, currency)),
				fmt.Sprintf("Progress:  %s", cli.RenderProgressBar(progress.Percentage, 20)),
				fmt.Sprintf("Period:    %s from %s", b.Period, b.StartDate.Format("2006-01-02")),
			)
			if len(b.Categories) > 0 {
				lines = append(lines, fmt.Sprintf("Categories: %s", strings.Join(b.Categories, ", ")))
			}
			if b.Notes != "" {
				lines = append(lines, fmt.Sprintf("Notes:     %s", b.Notes))
			}
			if progress.OverBudget {
				lines = append(lines, cli.ErrorStyle.Render("This budget is over its allocation."))
			}
			fmt.Println(cli.RenderBox(b.DisplayName(), strings.Join(lines, "\n")))

			matching := budget.MatchingTransactions(b, txns)
			if len(matching) == 0 {
				return nil
			}
			fmt.Println(cli.SubtitleStyle.Render("Transactions"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			for _, t := range matching {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					t.Date.Format("2006-01-02"),
					cli.FormatMoney(t.Amount, currency),
					t.Category,
					t.Description)
			}
			return nil
		},
	}
}

func addBudgetCmd() *cobra.Command {
	var (
		categories []string
		period     string
		start      string
		notes      string
		template   bool
	)

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Add a budget",
		Long:  `Create a budget for this month, or a planned template with --template.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			startDate := time.Now()
			if start != "" {
				startDate, err = time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			b := model.Budget{
				Name:       args[0],
				Amount:     amount,
				Categories: categories,
				Period:     model.BudgetPeriod(period),
				StartDate:  startDate,
				Notes:      notes,
				IsTemplate: template,
			}
			if err := b.Validate(); err != nil {
				return err
			}

			created := l.AddBudget(ctx, b)
			kind := "budget"
			if template {
				kind = "planned budget"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s %q (%s)", kind, created.DisplayName(), created.ID)))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "Category name covered by this budget (repeatable)")
	cmd.Flags().StringVar(&period, "period", "monthly", "Budget period (monthly, yearly)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().BoolVar(&template, "template", false, "Create as a planned template instead of a live budget")

	return cmd
}

func updateBudgetCmd() *cobra.Command {
	var (
		name       string
		amount     string
		categories []string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a budget",
		Long:  `Change fields of an existing budget. Unset flags keep current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			b, ok := l.Budget(args[0])
			if !ok {
				return fmt.Errorf("budget %q not found", args[0])
			}

			if name != "" {
				b.Name = name
			}
			if amount != "" {
				b.Amount, err = decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid --amount %q", amount)
				}
			}
			if cmd.Flags().Changed("category") {
				b.Categories = categories
			}
			if cmd.Flags().Changed("notes") {
				b.Notes = notes
			}

			if err := b.Validate(); err != nil {
				return err
			}

			l.UpdateBudget(ctx, b)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated budget %q", b.DisplayName())))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&amount, "amount", "", "New allocation amount")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "New category set (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			b, ok := l.Budget(args[0])
			if !ok {
				return fmt.Errorf("budget %q not found", args[0])
			}

			if !force {
				fmt.Printf("Delete budget %q? Transactions are kept. (y/N): ", b.DisplayName())
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			l.DeleteBudget(ctx, b.ID)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted budget %q", b.DisplayName())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func balanceBudgetCmd() *cobra.Command {
	var donorID string

	cmd := &cobra.Command{
		Use:   "balance <recipient-id>",
		Short: "Cover an overspent budget from another budget",
		Long: `Move exactly the recipient's shortfall from a donor budget's allocation.
The transfer is all-or-nothing: it is rejected when the donor's allocation
would go negative. Without --from, an interactive picker lists donors with
slack remaining.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			recipientID := args[0]
			donor := donorID
			if donor == "" {
				donor, err = pickDonor(l, recipientID)
				if err != nil {
					return err
				}
				if donor == "" {
					fmt.Println("Balance cancelled.")
					return nil
				}
			}

			transfer, err := budget.Balance(ctx, l, recipientID, donor)
			if err != nil {
				switch {
				case errors.Is(err, budget.ErrNotOverBudget):
					return fmt.Errorf("budget %q is not over budget, nothing to balance", recipientID)
				case errors.Is(err, budget.ErrDonorShortfall):
					return fmt.Errorf("donor %q does not have enough allocation to cover the shortfall", donor)
				default:
					return err
				}
			}

			currency := l.Settings().Currency
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Moved %s from %q to %q",
				cli.FormatMoney(transfer.Amount, currency),
				transfer.Donor.DisplayName(),
				transfer.Recipient.DisplayName())))
			return nil
		},
	}

	cmd.Flags().StringVar(&donorID, "from", "", "Donor budget ID (interactive picker when omitted)")

	return cmd
}

func pickDonor(l *ledger.Ledger, recipientID string) (string, error) {
	recipient, ok := l.Budget(recipientID)
	if !ok {
		return "", fmt.Errorf("budget %q not found", recipientID)
	}

	candidates := budget.DonorCandidates(l.Budgets(), l.Transactions(), recipientID)
	if len(candidates) == 0 {
		return "", fmt.Errorf("no budgets have allocation to spare")
	}

	title := fmt.Sprintf("Cover %q from:", recipient.DisplayName())
	return tui.PickDonor(title, l.Settings().Currency, candidates)
}

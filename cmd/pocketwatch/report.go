package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/cli"
	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/pocketwatch/pocketwatch/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries and breakdowns",
	}

	cmd.AddCommand(reportBalanceCmd())
	cmd.AddCommand(reportSeriesCmd())
	cmd.AddCommand(reportBreakdownCmd())

	return cmd
}

func reportBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "This period's cash flow and the all-time balance",
		Long: `Show income, expenses, and net for the current reporting period. The
period starts on the configured first day of month, which can differ
from the calendar month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			settings := l.Settings()
			txns := l.Transactions()

			start, end := report.PeriodWindow(time.Now(), settings.FirstDayOfMonth)
			flow := report.Flow(txns, start, end)
			net := report.NetBalance(txns)

			content := fmt.Sprintf("Period:    %s to %s\nIncome:    %s\nExpenses:  %s\nNet:       %s\n\nAll-time:  %s",
				start.Format("2006-01-02"),
				end.AddDate(0, 0, -1).Format("2006-01-02"),
				cli.SuccessStyle.Render(cli.FormatMoney(flow.Income, settings.Currency)),
				cli.ErrorStyle.Render(cli.FormatMoney(flow.Expenses, settings.Currency)),
				cli.BoldStyle.Render(cli.FormatMoney(flow.Net, settings.Currency)),
				cli.BoldStyle.Render(cli.FormatMoney(net, settings.Currency)))
			fmt.Println(cli.RenderBox("Balance", content))
			return nil
		},
	}
}

func reportSeriesCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Monthly cash-flow series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			currency := l.Settings().Currency
			series := report.MonthlySeries(l.Transactions(), time.Now(), months)

			fmt.Println(cli.FormatTitle("Monthly cash flow"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Month"),
				cli.TableHeaderStyle.Render("Income"),
				cli.TableHeaderStyle.Render("Expenses"),
				cli.TableHeaderStyle.Render("Net"))
			for _, m := range series {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					m.Month.Format("Jan 2006"),
					cli.FormatMoney(m.Flow.Income, currency),
					cli.FormatMoney(m.Flow.Expenses, currency),
					cli.FormatMoney(m.Flow.Net, currency))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 12, "Number of trailing months")

	return cmd
}

func reportBreakdownCmd() *cobra.Command {
	var (
		txType string
		month  string
	)

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Spending by category for a month",
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
			start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, 0)

			currency := l.Settings().Currency
			totals := report.CategoryTotals(l.Transactions(), model.TransactionType(txType), start, end)
			if len(totals) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No %s transactions in %s.", txType, start.Format("January 2006"))))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s by category, %s", txType, start.Format("January 2006"))))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			for _, t := range totals {
				name := t.Category
				if name == "" {
					name = cli.SubtleStyle.Render("(uncategorized)")
				}
				fmt.Fprintf(w, "%s\t%s\n", name, cli.FormatMoney(t.Total, currency))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "expense", "Transaction type (expense, income)")
	cmd.Flags().StringVar(&month, "month", "", "Month to break down (YYYY-MM, default current)")

	return cmd
}

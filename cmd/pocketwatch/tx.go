package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/cli"
	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/pocketwatch/pocketwatch/internal/report"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `List, add, update, and delete ledger transactions.`,
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		txType     string
		search     string
		categories []string
		from       string
		to         string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `Display transactions, newest first, with optional type, category, text, and date filters.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := report.Filter{
				Type:       model.TransactionType(txType),
				Search:     search,
				Categories: categories,
			}
			if from != "" {
				start, err := time.Parse("2006-01-02", from)
				if err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
				filter.Start = &start
			}
			if to != "" {
				end, err := time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
				filter.End = &end
			}

			txns := filter.Apply(l.Transactions())
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found. Use 'pocketwatch tx add' to create one."))
				return nil
			}

			currency := l.Settings().Currency
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Description"),
				cli.TableHeaderStyle.Render("ID"))

			for _, t := range txns {
				amount := cli.FormatMoney(t.Amount, currency)
				if t.Type == model.TypeExpense {
					amount = cli.ErrorStyle.Render("-" + amount)
				} else {
					amount = cli.SuccessStyle.Render("+" + amount)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.Date.Format("2006-01-02"),
					t.Type,
					amount,
					t.Category,
					t.Description,
					cli.SubtleStyle.Render(t.ID))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "Filter by type (expense, income)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive search on description and category")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Filter by category name (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to show (0 = all)")

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		txType      string
		category    string
		date        string
		description string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add a transaction",
		Long:  `Record a new transaction. The amount is positive; --type decides expense vs income.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}

			when := time.Now()
			if date != "" {
				when, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txn := model.Transaction{
				Type:        model.TransactionType(txType),
				Amount:      amount,
				Date:        when,
				Category:    category,
				Description: description,
				Notes:       notes,
			}
			if err := txn.Validate(); err != nil {
				return err
			}

			created := l.AddTransaction(ctx, txn)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %s (%s)",
				created.Type,
				cli.FormatMoney(created.Amount, l.Settings().Currency),
				created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "expense", "Transaction type (expense, income)")
	cmd.Flags().StringVar(&category, "category", "", "Category name")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func updateTxCmd() *cobra.Command {
	var (
		amount      string
		txType      string
		category    string
		date        string
		description string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Long:  `Change fields of an existing transaction. Unset flags keep current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txn, ok := l.Transaction(args[0])
			if !ok {
				return fmt.Errorf("transaction %q not found", args[0])
			}

			if amount != "" {
				txn.Amount, err = decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid --amount %q", amount)
				}
			}
			if txType != "" {
				txn.Type = model.TransactionType(txType)
			}
			if cmd.Flags().Changed("category") {
				txn.Category = category
			}
			if date != "" {
				txn.Date, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}
			if cmd.Flags().Changed("description") {
				txn.Description = description
			}
			if cmd.Flags().Changed("notes") {
				txn.Notes = notes
			}

			if err := txn.Validate(); err != nil {
				return err
			}

			l.UpdateTransaction(ctx, txn)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %s", txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "New amount")
	cmd.Flags().StringVar(&txType, "type", "", "New type (expense, income)")
	cmd.Flags().StringVar(&category, "category", "", "New category name")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txn, ok := l.Transaction(args[0])
			if !ok {
				return fmt.Errorf("transaction %q not found", args[0])
			}

			if !force {
				fmt.Printf("Delete %s %s (%s)? (y/N): ",
					txn.Type, txn.Amount.StringFixed(2), txn.Description)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			l.DeleteTransaction(ctx, txn.ID)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", txn.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/backup"
	"github.com/pocketwatch/pocketwatch/internal/cli"
	"github.com/pocketwatch/pocketwatch/internal/ledger"
	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/pocketwatch/pocketwatch/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data from files",
		Long: `Import a full JSON backup (replaces everything), transactions from a
CSV or OFX/QFX statement (appends), or a legacy sheet export (replaces
everything).`,
	}

	cmd.AddCommand(importJSONCmd())
	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importSheetCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importJSONCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "json <file>",
		Short: "Restore a JSON backup, replacing all current data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup: %w", err)
			}
			defer f.Close()

			data, err := backup.ImportJSON(f)
			if err != nil {
				return err
			}

			if !force && !confirmReplace() {
				return nil
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			l.Replace(ctx, data)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions, %d budgets, %d categories",
				len(data.Transactions), len(data.Budgets), len(data.Categories))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func importCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv <file>",
		Short: "Append transactions from a CSV file",
		Long: `Parse transaction rows from a CSV file and append them to the ledger.
Rows that fail to parse are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer f.Close()

			txns, problems, err := backup.ImportTransactionsCSV(f)
			if err != nil {
				return err
			}
			for _, p := range problems {
				fmt.Println(cli.FormatWarning(p))
			}
			if len(txns) == 0 {
				return fmt.Errorf("no importable rows in %s", args[0])
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			appendTransactions(ctx, l, txns)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d rows skipped)",
				len(txns), len(problems))))
			return nil
		},
	}
}

func importSheetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sheet <file>",
		Short: "Restore a legacy sheet export, replacing all current data",
		Long: `Import the old spreadsheet export format. Categories are derived from
the rows and missing settings take the sheet-era defaults (EUR, month
starting on the 1st).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open sheet export: %w", err)
			}
			defer f.Close()

			data, err := backup.ImportSheet(f)
			if err != nil {
				return err
			}

			if !force && !confirmReplace() {
				return nil
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			l.Replace(ctx, data)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions and %d derived categories",
				len(data.Transactions), len(data.Categories))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func importOFXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ofx <file>",
		Short: "Append transactions from an OFX/QFX bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open statement: %w", err)
			}
			defer f.Close()

			txns, err := ofx.NewParser().ParseFile(ctx, f)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				return fmt.Errorf("no transactions in %s", args[0])
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			appendTransactions(ctx, l, txns)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", len(txns))))
			return nil
		},
	}
}

// appendTransactions adds imported rows in batches with a progress bar.
// The bar is cosmetic on small files but earns its keep on multi-year
// statements.
func appendTransactions(ctx context.Context, l *ledger.Ledger, txns []model.Transaction) {
	bar := progressbar.Default(int64(len(txns)), "importing")
	const batchSize = 200
	for start := 0; start < len(txns); start += batchSize {
		end := start + batchSize
		if end > len(txns) {
			end = len(txns)
		}
		l.AddTransactions(ctx, txns[start:end])
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()
}

func confirmReplace() bool {
	fmt.Print("This replaces ALL current data. Continue? (y/N): ")
	var response string
	fmt.Scanln(&response)
	if strings.ToLower(response) != "y" {
		fmt.Println("Import cancelled.")
		return false
	}
	return true
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/backup"
	"github.com/pocketwatch/pocketwatch/internal/cli"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data to files",
	}

	cmd.AddCommand(exportJSONCmd())
	cmd.AddCommand(exportCSVCmd())

	return cmd
}

func exportJSONCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Write a full JSON backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if output == "" {
				output = fmt.Sprintf("pocketwatch_backup_%s.json", time.Now().Format("2006-01-02"))
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := backup.ExportJSON(f, l.Snapshot()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Backup written to %s", output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default pocketwatch_backup_<date>.json)")

	return cmd
}

func exportCSVCmd() *cobra.Command {
	var (
		output string
		kind   string
	)

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write transactions or budgets as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if output == "" {
				output = fmt.Sprintf("%s_%s.csv", kind, time.Now().Format("2006-01-02"))
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create CSV file: %w", err)
			}
			defer f.Close()

			switch kind {
			case "transactions":
				err = backup.ExportTransactionsCSV(f, l.Transactions())
			case "budgets":
				err = backup.ExportBudgetsCSV(f, l.Budgets())
			default:
				return fmt.Errorf("unknown export kind %q, want transactions or budgets", kind)
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("CSV written to %s", output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default <kind>_<date>.csv)")
	cmd.Flags().StringVar(&kind, "kind", "transactions", "What to export (transactions, budgets)")

	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/cli"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data and restore the default seed",
		Long: `Discard every transaction, budget, and category and restore the stock
category set. There is no undo; export a backup first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Print("Erase ALL data and restore defaults? (y/N): ")
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Reset cancelled.")
					return nil
				}
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			l.Reset(ctx)
			fmt.Println(cli.FormatSuccess("All data erased, defaults restored"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

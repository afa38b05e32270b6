package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/budget"
	"github.com/pocketwatch/pocketwatch/internal/cli"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage the planned budget templates",
		Long: `Planned budgets are the templates each new month's live budgets are
created from. Edit them with 'pocketwatch budgets add --template' and
'pocketwatch budgets update'.`,
	}

	cmd.AddCommand(planListCmd())
	cmd.AddCommand(planResetCmd())

	return cmd
}

func planListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List planned budget templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			templates := budget.Templates(l.Budgets())
			if len(templates) == 0 {
				fmt.Println(cli.InfoStyle.Render("No planned budgets. Use 'pocketwatch budgets add --template' to create one."))
				return nil
			}

			currency := l.Settings().Currency
			fmt.Println(cli.FormatTitle("Planned budgets"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			for _, t := range templates {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cli.BoldStyle.Render(t.DisplayName()),
					cli.FormatMoney(t.Amount, currency),
					strings.Join(t.Categories, ", "),
					cli.SubtleStyle.Render(t.ID))
			}
			return nil
		},
	}
}

func planResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace this month's budgets with fresh copies of the plan",
		Long: `Delete every live budget and re-create one from each template, starting
today. Recorded transactions are untouched, but any mid-month budget
adjustments are lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force {
				fmt.Print("Replace all live budgets with the plan? Adjustments will be lost. (y/N): ")
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Reset cancelled.")
					return nil
				}
			}

			created := budget.NewRoller(l).ResetToPlan(ctx)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reset to plan: %d budgets created", created)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

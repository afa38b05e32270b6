package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/cli"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change application settings",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			s := l.Settings()
			content := fmt.Sprintf("Currency:           %s\nFirst day of month: %d\nTheme:              %s",
				s.Currency, s.FirstDayOfMonth, s.Theme)
			fmt.Println(cli.RenderBox("Settings", content))
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		currency string
		firstDay int
		theme    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change one or more settings. The first day of month shifts the window
the report balance is computed over, not when budgets roll.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			s := l.Settings()
			if currency != "" {
				s.Currency = currency
			}
			if cmd.Flags().Changed("first-day") {
				s.FirstDayOfMonth = firstDay
			}
			if theme != "" {
				s.Theme = theme
			}

			if err := s.Validate(); err != nil {
				return err
			}

			l.UpdateSettings(ctx, s)
			fmt.Println(cli.FormatSuccess("Settings updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (USD, EUR, ...)")
	cmd.Flags().IntVar(&firstDay, "first-day", 1, "First day of the reporting month (1-31)")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme (light, dark, system)")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pocketwatch/pocketwatch/internal/cli"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, add, update, and delete the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories := l.Categories()
			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'pocketwatch categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Color"),
				cli.TableHeaderStyle.Render("ID"))

			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cat.Name,
					cat.Type,
					cat.Color,
					cli.SubtleStyle.Render(cat.ID))
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		catType string
		color   string
		icon    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, exists := l.CategoryByName(name); exists {
				return fmt.Errorf("category %q already exists", name)
			}

			created := l.AddCategory(ctx, model.Category{
				Name:  name,
				Type:  model.CategoryType(catType),
				Color: color,
				Icon:  icon,
			})
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&catType, "type", "expense", "Category type (expense, income, both)")
	cmd.Flags().StringVar(&color, "color", "#607D8B", "Display color (hex)")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon name")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name    string
		catType string
		color   string
		icon    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long: `Change a category's fields. Renaming does not rewrite transactions or
budgets; rows keeping the old name simply stop matching.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, ok := l.Category(args[0])
			if !ok {
				return fmt.Errorf("category %q not found", args[0])
			}

			if name != "" {
				cat.Name = name
			}
			if catType != "" {
				cat.Type = model.CategoryType(catType)
			}
			if color != "" {
				cat.Color = color
			}
			if cmd.Flags().Changed("icon") {
				cat.Icon = icon
			}

			l.UpdateCategory(ctx, cat)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&catType, "type", "", "New type (expense, income, both)")
	cmd.Flags().StringVar(&color, "color", "", "New display color (hex)")
	cmd.Flags().StringVar(&icon, "icon", "", "New display icon")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Transactions and budgets referencing it keep the
name; those transactions just stop counting toward budget spending.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, ok := l.Category(args[0])
			if !ok {
				return fmt.Errorf("category %q not found", args[0])
			}

			if !force {
				fmt.Printf("Delete category %q? (y/N): ", cat.Name)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			l.DeleteCategory(ctx, cat.ID)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

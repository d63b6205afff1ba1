package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (cli *CLI) newCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "Manage categories",
	}

	var color string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Long: `Add a category. Names are unique, ignoring case.

Examples:
  nanotodo category add Work --color "#ff8800"
  nanotodo category add Home --color 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := validateCategoryName(cli.app.State().Categories, strings.Join(args, " "))
			if err != nil {
				return err
			}
			category := cli.app.AddCategory(name, strings.TrimSpace(color))
			fmt.Fprintf(cli.out, "Added category %s %s\n", shortID(category.ID), category.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&color, "color", "", "Display color (hex like #ff8800 or an ANSI number)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := cli.app.State()
			s := newStyles(cli.out, cli.cfg.NoColor, cli.now())
			renderCategoryTable(cli.out, s, state.Categories, state.Todos)
			return nil
		},
	}

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a category",
		Long: `Delete a category. Todos in it keep the category name and can still
be listed with --category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := resolveCategory(cli.app.State().Categories, args[0])
			if err != nil {
				return err
			}

			if !yes && !confirm(cli.in, cli.out, fmt.Sprintf("Delete category %q?", category.Name)) {
				fmt.Fprintln(cli.out, "Cancelled")
				return nil
			}

			cli.app.DeleteCategory(category.ID)
			fmt.Fprintf(cli.out, "Deleted category %s\n", category.Name)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(addCmd, listCmd, deleteCmd)
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotodo/nanotodo/export"
	"github.com/arthur-debert/nanotodo/types"
	"github.com/spf13/cobra"
)

// filterFlags are the view criteria flags of list
type filterFlags struct {
	search        string
	category      string
	priority      string
	showCompleted bool
	sortBy        string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Only todos whose title or description contains this text")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Only todos in this category (empty for all)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Only todos with this priority (empty or all for any)")
	cmd.Flags().BoolVar(&f.showCompleted, "show-completed", true, "Include completed todos")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "Sort key (createdAt, dueDate, priority)")
}

// patch builds a FilterPatch from the flags that were passed
func (f *filterFlags) patch(cli *CLI, cmd *cobra.Command) (types.FilterPatch, error) {
	var patch types.FilterPatch
	flags := cmd.Flags()

	if flags.Changed("search") {
		patch.SearchText = types.Ptr(strings.TrimSpace(f.search))
	}
	if flags.Changed("category") {
		name, err := cli.categoryName(f.category)
		if err != nil {
			// Filtering on a deleted category still finds its orphans
			name = strings.TrimSpace(f.category)
		}
		patch.Category = &name
	}
	if flags.Changed("priority") {
		p, err := validatePriorityFilter(f.priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if flags.Changed("show-completed") {
		patch.ShowCompleted = types.Ptr(f.showCompleted)
	}
	if flags.Changed("sort") {
		by, err := types.ParseSortBy(f.sortBy)
		if err != nil {
			return patch, err
		}
		patch.SortBy = &by
	}
	return patch, nil
}

func (f *filterFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"search", "category", "priority", "show-completed", "sort"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (cli *CLI) newListCommand() *cobra.Command {
	var (
		filter filterFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos through the saved filter",
		Long: `List todos. Open todos come first, then completed ones, each group
ordered by the sort key.

Filter flags are saved: the next list uses them until changed or
reset with "nanotodo filter reset".

Examples:
  nanotodo list
  nanotodo list --search milk
  nanotodo list --priority high --show-completed=false
  nanotodo list --sort due --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.anyChanged(cmd) {
				patch, err := filter.patch(cli, cmd)
				if err != nil {
					return err
				}
				cli.app.SetFilter(patch)
			}

			state := cli.app.State()
			visible := cli.app.Visible()

			switch strings.ToLower(format) {
			case "", "table":
				s := newStyles(cli.out, cli.cfg.NoColor, cli.now())
				renderTodoTable(cli.out, s, visible, state.Categories)
				if len(visible) > 0 {
					fmt.Fprintln(cli.out, s.muted.Render(fmt.Sprintf("%d of %d todos", len(visible), len(state.Todos))))
				}
				return nil
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return export.Write(cli.out, f, export.FromView(state, visible, cli.now()))
		},
	}
	filter.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table|json|yaml)")
	return cmd
}

func (cli *CLI) newFilterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show or reset the saved list filter",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved list filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newStyles(cli.out, cli.cfg.NoColor, cli.now())
			renderFilter(cli.out, s, cli.app.State().Filter)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def := types.DefaultFilter()
			cli.app.SetFilter(types.FilterPatch{
				SearchText:    &def.SearchText,
				Category:      &def.Category,
				Priority:      &def.Priority,
				ShowCompleted: &def.ShowCompleted,
				SortBy:        &def.SortBy,
			})
			fmt.Fprintln(cli.out, "Filter reset")
			return nil
		},
	})

	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotodo/nanotodo/app"
	"github.com/arthur-debert/nanotodo/types"
	"github.com/spf13/cobra"
)

// todoFlags are the field flags shared by add and update
type todoFlags struct {
	description string
	priority    string
	due         string
	category    string
	tags        []string
}

func (f *todoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Detailed description")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Priority level (low, medium, high)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD format)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category name or id")
	cmd.Flags().StringSliceVarP(&f.tags, "tag", "t", nil, "Tag (repeatable or comma-separated)")
}

// categoryName maps a category reference to the stored name. An empty
// reference clears the category.
func (cli *CLI) categoryName(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	category, err := resolveCategory(cli.app.State().Categories, ref)
	if err != nil {
		return "", err
	}
	return category.Name, nil
}

func (cli *CLI) newAddCommand() *cobra.Command {
	var fields todoFlags

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new todo",
		Long: `Add a new todo. It starts incomplete with medium priority unless
--priority says otherwise.

Examples:
  nanotodo add "Buy groceries"
  nanotodo add "Ship release" --priority high --due 2024-05-01
  nanotodo add "Call mom" -c Home -t phone -t family`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := validateTitle(strings.Join(args, " "))
			if err != nil {
				return err
			}

			input := app.TodoInput{
				Title:       title,
				Description: strings.TrimSpace(fields.description),
				Tags:        cleanTags(fields.tags),
			}
			if fields.priority != "" {
				if input.Priority, err = types.ParsePriority(fields.priority); err != nil {
					return err
				}
			}
			if input.DueDate, err = validateDueDate(fields.due); err != nil {
				return err
			}
			if input.Category, err = cli.categoryName(fields.category); err != nil {
				return err
			}

			todo := cli.app.AddTodo(input)
			fmt.Fprintf(cli.out, "Added %s %s\n", shortID(todo.ID), todo.Title)
			return nil
		},
	}
	fields.register(cmd)
	return cmd
}

func (cli *CLI) newUpdateCommand() *cobra.Command {
	var (
		fields    todoFlags
		title     string
		completed bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a todo",
		Long: `Change fields of a todo. Only the flags given are changed; pass an
empty value to clear an optional field.

Examples:
  nanotodo update 3f2a --title "Buy oat milk"
  nanotodo update 3f2a --due ""           # remove the due date
  nanotodo update 3f2a -t work -t urgent  # replace the tags`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := resolveTodo(cli.app.State().Todos, args[0])
			if err != nil {
				return err
			}

			var patch types.TodoPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				t, err := validateTitle(title)
				if err != nil {
					return err
				}
				patch.Title = &t
			}
			if flags.Changed("description") {
				patch.Description = types.Ptr(strings.TrimSpace(fields.description))
			}
			if flags.Changed("priority") {
				p, err := types.ParsePriority(fields.priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("due") {
				due, err := validateDueDate(fields.due)
				if err != nil {
					return err
				}
				patch.DueDate = &due
			}
			if flags.Changed("category") {
				name, err := cli.categoryName(fields.category)
				if err != nil {
					return err
				}
				patch.Category = &name
			}
			if flags.Changed("tag") {
				tags := cleanTags(fields.tags)
				patch.Tags = &tags
			}
			if flags.Changed("completed") {
				patch.Completed = &completed
			}

			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			cli.app.UpdateTodo(todo.ID, patch)
			updated, _ := cli.app.State().FindTodo(todo.ID)
			fmt.Fprintf(cli.out, "Updated %s %s\n", shortID(updated.ID), updated.Title)
			return nil
		},
	}
	fields.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().BoolVar(&completed, "completed", false, "Set completion explicitly")
	return cmd
}

func (cli *CLI) newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>...",
		Short: "Flip todos between open and completed",
		Long: `Flip each todo between open and completed.

Examples:
  nanotodo toggle 3f2a
  nanotodo toggle 3f2a 9bc1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todos := cli.app.State().Todos

			// Resolve everything first so a bad id changes nothing
			targets := make([]types.Todo, 0, len(args))
			seen := make(map[string]bool, len(args))
			for _, ref := range args {
				todo, err := resolveTodo(todos, ref)
				if err != nil {
					return err
				}
				// A todo named twice, even by different prefixes, flips once
				if seen[todo.ID] {
					continue
				}
				seen[todo.ID] = true
				targets = append(targets, todo)
			}

			for _, todo := range targets {
				cli.app.ToggleTodo(todo.ID)
				status := "Completed"
				if todo.Completed {
					status = "Reopened"
				}
				fmt.Fprintf(cli.out, "%s %s %s\n", status, shortID(todo.ID), todo.Title)
			}
			return nil
		},
	}
}

func (cli *CLI) newDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := resolveTodo(cli.app.State().Todos, args[0])
			if err != nil {
				return err
			}

			if !yes && !confirm(cli.in, cli.out, fmt.Sprintf("Delete %q?", todo.Title)) {
				fmt.Fprintln(cli.out, "Cancelled")
				return nil
			}

			cli.app.DeleteTodo(todo.ID)
			fmt.Fprintf(cli.out, "Deleted %s %s\n", shortID(todo.ID), todo.Title)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

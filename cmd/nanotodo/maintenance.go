package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/nanotodo/nanotodo/export"
	"github.com/spf13/cobra"
)

func (cli *CLI) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show todo statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newStyles(cli.out, cli.cfg.NoColor, cli.now())
			renderStats(cli.out, s, cli.app.State())
			return nil
		},
	}
}

func (cli *CLI) newExportCommand() *cobra.Command {
	var (
		format     string
		view       bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export todos as JSON or YAML",
		Long: `Export todos, categories and the saved filter.

By default every todo is exported in insertion order. With --view only
the todos the saved filter shows are exported, in display order.

Examples:
  nanotodo export
  nanotodo export --format yaml --view
  nanotodo export -o backups/       # writes backups/nanotodo-<timestamp>.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			now := cli.now()
			state := cli.app.State()
			doc := export.FromState(state, now)
			if view {
				doc = export.FromView(state, cli.app.Visible(), now)
			}

			if outputPath == "" {
				return export.Write(cli.out, f, doc)
			}

			path := outputPath
			if info, err := os.Stat(path); (err == nil && info.IsDir()) || os.IsPathSeparator(path[len(path)-1]) {
				path = filepath.Join(path, export.Filename(f, now))
			}
			if err := writeExportFile(path, f, doc); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Exported %d todos to %s\n", len(doc.Todos), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json|yaml)")
	cmd.Flags().BoolVar(&view, "view", false, "Export only the filtered, sorted view")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file or directory (default: stdout)")
	return cmd
}

func writeExportFile(path string, f export.Format, doc export.Document) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()
	return export.Write(file, f, doc)
}

func (cli *CLI) newClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all saved todos, categories and the filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cli.in, cli.out, "Remove all saved data?") {
				fmt.Fprintln(cli.out, "Cancelled")
				return nil
			}
			cli.app.ClearStorage()
			fmt.Fprintln(cli.out, "Storage cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

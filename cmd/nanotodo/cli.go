package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/app"
	"github.com/arthur-debert/nanotodo/nanotodo/config"
	"github.com/arthur-debert/nanotodo/nanotodo/ids"
	"github.com/arthur-debert/nanotodo/nanotodo/logging"
	"github.com/arthur-debert/nanotodo/nanotodo/metrics"
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI wires the cobra commands to one App per invocation
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// injectable for tests
	now   func() time.Time
	newID ids.Generator

	cfg       config.Config
	app       *app.App
	recorder  *metrics.Recorder
	logger    *slog.Logger
	logCloser io.Closer
}

// NewCLI creates the command tree reading from in and writing to out and
// errOut
func NewCLI(in io.Reader, out, errOut io.Writer) *CLI {
	cli := &CLI{
		in:     in,
		out:    out,
		errOut: errOut,
		now:    time.Now,
		newID:  ids.UUIDGenerator{},
	}
	cli.createRootCommand()
	cli.addCommands()
	return cli
}

// Run executes the command line args and releases resources afterwards
func (cli *CLI) Run(args []string) error {
	defer cli.close()
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.Execute()
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "nanotodo",
		Short: "A small todo list for the terminal",
		Long: `Nanotodo keeps a todo list with categories and a saved view filter.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANOTODO_*)
3. Configuration file (--config, NANOTODO_CONFIG, ./nanotodo.*, ~/.nanotodo/nanotodo.*)

Examples:
  nanotodo add "Buy milk" --priority high --due 2024-05-01
  nanotodo list --sort priority --show-completed=false
  nanotodo toggle 3f2a
  NANOTODO_STORE=/tmp/todos.json nanotodo list`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.setup(cmd)
		},
	}

	cli.rootCmd.SetIn(cli.in)
	cli.rootCmd.SetOut(cli.out)
	cli.rootCmd.SetErr(cli.errOut)

	flags := cli.rootCmd.PersistentFlags()
	flags.StringP(config.KeyStore, "s", "", "Path to the todo file (default: XDG data dir)")
	flags.String(config.KeyLogLevel, "", "Log level (debug|info|warn|error)")
	flags.Bool(config.KeyNoColor, false, "Disable colored output")
	flags.String(config.KeyMetricsFile, "", "Write Prometheus metrics to this file after each command")
	flags.String("config", "", "Config file (default: ./nanotodo.* or ~/.nanotodo/nanotodo.*)")
}

func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newAddCommand(),
		cli.newUpdateCommand(),
		cli.newToggleCommand(),
		cli.newDeleteCommand(),
		cli.newListCommand(),
		cli.newCategoryCommand(),
		cli.newFilterCommand(),
		cli.newStatsCommand(),
		cli.newExportCommand(),
		cli.newClearCommand(),
	)
}

// setup resolves configuration, starts logging and loads the store
func (cli *CLI) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	v, err := config.New(configFile)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cli.viperInst = v
	cli.cfg = config.Load(v)

	logger, closer, err := logging.Init(logging.Options{Level: cli.cfg.LogLevel, Console: cli.errOut})
	if err != nil {
		fmt.Fprintf(cli.errOut, "Warning: %v\n", err)
		logger = logging.Discard()
	}
	cli.logger = logger
	cli.logCloser = closer

	cli.recorder = metrics.NewRecorder()
	adapter := storage.NewAdapter(
		storage.NewFileSlot(cli.cfg.StorePath),
		storage.WithLogger(cli.logger),
		storage.WithObserver(cli.recorder),
	)
	cli.app = app.New(adapter,
		app.WithTimeFunc(cli.now),
		app.WithIDGenerator(cli.newID),
		app.WithLogger(cli.logger),
		app.WithRecorder(cli.recorder),
	)
	cli.app.Start()

	cli.logger.Debug("command started", "command", cmd.CommandPath(), "store", cli.cfg.StorePath)
	return nil
}

func (cli *CLI) close() {
	if cli.recorder != nil && cli.cfg.MetricsFile != "" {
		if err := cli.recorder.WriteTextfile(cli.cfg.MetricsFile); err != nil {
			fmt.Fprintf(cli.errOut, "Warning: %v\n", err)
		}
	}
	if cli.logCloser != nil {
		_ = cli.logCloser.Close()
		cli.logCloser = nil
	}
}

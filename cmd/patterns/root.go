package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/patterns/internal/catalog"
	"github.com/dshills/patterns/internal/config"
	"github.com/dshills/patterns/internal/keymap"
	"github.com/dshills/patterns/internal/logging"
)

// cli holds state shared by the subcommands of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
	script     string

	cfg    *config.Config
	logger *slog.Logger
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "patterns",
		Short: "Patterns - a runnable catalog of design patterns",
		Long: `Patterns runs small illustrations of classic design patterns.

The Command demo binds Copy, Cut and Paste triggers to commands and
records each successful execution so the Undo trigger can reverse it.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runDemos,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file path (.toml, .yaml or .yml)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", "", "log format (text, json)")

	run := &cobra.Command{
		Use:   "run [demo...]",
		Short: "Run all demos, or only the named ones",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.runDemos,
	}
	run.Flags().StringVar(&c.script, "script", "", "Lua script that drives the Command demo")

	root.Flags().AddFlagSet(run.Flags())
	root.AddCommand(run, c.listCmd(), c.keysCmd(), c.versionCmd())
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewLoader().Load(c.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = c.logFormat
	}
	if c.script != "" {
		cfg.Command.Script = c.script
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.LoggingConfig()
	lc.Output = c.stderr
	logger, err := logging.New(lc)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logger
	return nil
}

func (c *cli) runDemos(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Default(c.cfg, c.logger, catalog.WithDiagnostics(c.stderr))
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = c.cfg.Catalog.Demos
	}

	c.logger.Debug("running demos", "demos", names, "config", c.configPath)
	return cat.Run(cmd.Context(), c.stdout, names...)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Default(c.cfg, c.logger, catalog.WithDiagnostics(c.stderr))
			if err != nil {
				return err
			}
			for _, name := range cat.Names() {
				fmt.Fprintln(c.stdout, name)
			}
			return nil
		},
	}
}

func (c *cli) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the key bindings accepted in command sequences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			for _, b := range keymap.Default().Bindings() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.Keys, b.Trigger, b.Description)
			}
			return w.Flush()
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(c.stdout, "Patterns %s\n", version)
			fmt.Fprintf(c.stdout, "Commit: %s\n", commit)
			fmt.Fprintf(c.stdout, "Built: %s\n", date)
			return nil
		},
	}
}

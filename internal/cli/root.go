package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todo-cli/internal/format"
	"todo-cli/internal/logging"
	"todo-cli/internal/store"
)

type App struct {
	File       string
	PrettyJSON bool
	Format     string
	LogLevel   string

	cfg    *store.Config
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Tree-structured todo lists (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Open a list directly in the TUI (shortcut for: todo open Groceries.todo)
  todo Groceries.todo

  # Scriptable commands
  todo new Groceries
  todo -f Groceries.todo add Milk
  todo -f Groceries.todo toggle 1
  todo -f Groceries.todo show --depth 3
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app, app.File)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl := strings.TrimSpace(app.LogLevel)
		if lvl == "" {
			// A broken config file must not stop `todo config reset`.
			if cfg, err := app.config(); err == nil {
				lvl = cfg.LogLevel
			}
		}
		level, err := logging.ParseLevel(lvl)
		if err != nil {
			return writeErr(cmd, err)
		}
		opts := logging.DefaultOptions()
		opts.Level = level
		opts.Output = cmd.ErrOrStderr()
		app.logger = logging.New(opts)
		return nil
	}

	cmd.PersistentFlags().StringVarP(&app.File, "file", "f", envOr("TODO_FILE", ""), "Path to the .todo list to work on")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "json"), "Output format for data commands (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TODO_LOG_LEVEL", ""), "Log level (debug|info|warn|error; default from config, else warn)")

	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMvCmd(app))
	cmd.AddCommand(newCpCmd(app))
	cmd.AddCommand(newPrintCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newRecentCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// config loads config.json once per invocation.
func (app *App) config() (*store.Config, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	app.cfg = cfg
	return cfg, nil
}

// formatter returns the configured display formatter, or the print formatter
// when forPrint is set. TODO_GLYPHS overrides the glyph set of either.
func (app *App) formatter(forPrint bool) (format.Formatter, error) {
	cfg, err := app.config()
	if err != nil {
		return format.Default(), err
	}
	fc := cfg.Formatter
	if forPrint {
		fc = cfg.PrintFormatter
	}
	f, err := fc.Formatter()
	if err != nil {
		return f, fmt.Errorf("config: %w", err)
	}
	f.Glyphs = format.GlyphsFromEnv(f.Glyphs)
	return f, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"todo-cli/internal/logging"
	"todo-cli/internal/store"
	"todo-cli/internal/tui"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open [file.todo]",
		Short: "Open a list in the interactive TUI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := app.File
			if len(args) == 1 {
				file = args[0]
			}
			return runTUI(cmd, app, file)
		},
	}
}

// tuiLogPath is TODO_LOG_FILE, else todo.log in the config dir.
func tuiLogPath() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_FILE")); v != "" {
		return v, nil
	}
	dir, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todo.log"), nil
}

func runTUI(cmd *cobra.Command, app *App, file string) error {
	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}

	// The TUI owns the terminal, so logs go to a file instead of stderr.
	logger := logging.Discard()
	if p, err := tuiLogPath(); err == nil {
		if f, err := logging.Open(p); err == nil {
			defer f.Close()
			opts := logging.DefaultOptions()
			opts.Level = app.logger.GetLevel()
			opts.Output = f
			opts.ReportTimestamp = true
			logger = logging.New(opts)
		}
	}

	return tui.Run(tui.Options{
		File:   strings.TrimSpace(file),
		Config: cfg,
		Logger: logger,
	})
}

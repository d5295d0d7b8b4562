package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"todo-cli/internal/core"
	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/publish"
	"todo-cli/internal/store"
)

func loadList(app *App) (*core.Core, string, error) {
	path := strings.TrimSpace(app.File)
	if path == "" {
		return nil, "", errMissingFile
	}
	c, err := core.Load(path)
	if err != nil {
		app.logger.Error("load failed", "path", path, "err", err)
		return nil, path, err
	}
	app.logger.Debug("loaded list", "path", path, "entries", c.Stats().Entries)
	return c, path, nil
}

func saveList(cmd *cobra.Command, app *App, c *core.Core, path string) error {
	if err := c.SaveFile(path); err != nil {
		app.logger.Error("save failed", "path", path, "err", err)
		return err
	}
	app.logger.Info("saved list", "path", path)
	recordRecent(cmd, app, path, c)
	return nil
}

// recordRecent notes path in the catalog. Failures are only logged; the
// catalog is a convenience index, never the source of truth.
func recordRecent(cmd *cobra.Command, app *App, path string, c *core.Core) {
	cp, err := store.CatalogPath()
	if err != nil {
		app.logger.Warn("catalog unavailable", "err", err)
		return
	}
	cat, err := store.OpenCatalog(cmd.Context(), cp)
	if err != nil {
		app.logger.Warn("catalog unavailable", "path", cp, "err", err)
		return
	}
	defer cat.Close()
	st := c.Stats()
	err = cat.Record(cmd.Context(), store.CatalogEntry{
		Path:      path,
		Name:      c.Name(),
		Entries:   st.Entries,
		Completed: st.Completed,
	})
	if err != nil {
		app.logger.Warn("catalog record failed", "path", path, "err", err)
	}
}

func newNewCmd(app *App) *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new list saved as <name>.todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return writeErr(cmd, errors.New("missing list name"))
			}
			d := strings.TrimSpace(dir)
			if d == "" {
				d = "."
			}
			if err := os.MkdirAll(d, 0o755); err != nil {
				return writeErr(cmd, err)
			}
			path := filepath.Join(d, core.FileName(name))
			if !force {
				if _, err := os.Stat(path); err == nil {
					return writeErr(cmd, fileExistsError{path: path})
				}
			}
			c := core.New(name)
			if err := saveList(cmd, app, c, path); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"path": path, "name": name},
				"_hints": []string{
					"todo -f " + path + " add <name>",
					"todo " + path,
				},
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to create the list in (default: current directory)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing list of the same name")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var v viewOpts
	var style string
	var unfinished bool
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current view of a list as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := v.apply(app, c); err != nil {
				return writeErr(cmd, err)
			}
			f, err := app.formatter(false)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(style) != "" {
				s, err := format.ParseStyle(style)
				if err != nil {
					return writeErr(cmd, err)
				}
				f.Style = s
			}
			var buf bytes.Buffer
			if err := publish.WriteText(&buf, c, f, unfinished); err != nil {
				return writeErr(cmd, err)
			}
			if copyOut {
				if err := clipboard.WriteAll(buf.String()); err != nil {
					return writeErr(cmd, err)
				}
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
	v.bind(cmd)
	cmd.Flags().StringVar(&style, "style", "", "Override the formatter style (basic|fancy)")
	cmd.Flags().BoolVar(&unfinished, "unfinished", false, "Leave out completed entries")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the output to the clipboard")
	return cmd
}

func newLsCmd(app *App) *cobra.Command {
	var v viewOpts

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the entries of the current view with their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := v.apply(app, c); err != nil {
				return writeErr(cmd, err)
			}
			rows, err := c.Rows()
			if err != nil {
				return writeErr(cmd, err)
			}
			if rows == nil {
				rows = []model.Row{}
			}
			return writeOut(cmd, app, map[string]any{
				"data":  rows,
				"stats": c.Stats(),
			})
		},
	}
	v.bind(cmd)
	return cmd
}

func newPrintCmd(app *App) *cobra.Command {
	var v viewOpts
	var dir string
	var unfinished bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Write the current view to <list name>.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, path, err := loadList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := v.apply(app, c); err != nil {
				return writeErr(cmd, err)
			}
			f, err := app.formatter(true)
			if err != nil {
				return writeErr(cmd, err)
			}
			d := strings.TrimSpace(dir)
			if d == "" {
				d = filepath.Dir(path)
			}
			out, err := publish.PrintFile(d, c, f, unfinished)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("printed list", "path", out)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out}})
		},
	}
	v.bind(cmd)
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to print into (default: next to the list)")
	cmd.Flags().BoolVar(&unfinished, "unfinished", false, "Leave out completed entries")
	return cmd
}

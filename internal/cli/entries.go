package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"todo-cli/internal/core"
	"todo-cli/internal/tree"
)

// mutate loads the list, applies fn and saves it back. fn's result becomes
// the "data" of the output alongside the new stats.
func mutate(cmd *cobra.Command, app *App, fn func(c *core.Core) (any, error)) error {
	c, path, err := loadList(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	data, err := fn(c)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := saveList(cmd, app, c, path); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": data, "stats": c.Stats()})
}

func entryData(c *core.Core, id tree.NodeID) (any, error) {
	e, err := c.Entry(id)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": fileID(c, id), "name": e.Name, "complete": e.Complete}, nil
}

// fileID is the id the entry will have the next time the list is loaded:
// loading numbers entries in pre-order, root first.
func fileID(c *core.Core, id tree.NodeID) int {
	ds, _ := c.DescendantsOf(c.Root())
	for i, d := range ds {
		if d == id {
			return i + 1
		}
	}
	return int(id)
}

func newAddCmd(app *App) *cobra.Command {
	var ref string
	pos := positionFlag{pos: tree.LastChild}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an entry (as the last child of the list root by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return writeErr(cmd, errors.New("missing entry name"))
			}
			return mutate(cmd, app, func(c *core.Core) (any, error) {
				r, err := refOr(ref, c.Root())
				if err != nil {
					return nil, err
				}
				id, err := c.NewEntry(name, pos.pos, r)
				if err != nil {
					return nil, err
				}
				return entryData(c, id)
			})
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "Reference entry id (default: the list root)")
	cmd.Flags().Var(&pos, "pos", "Position relative to --ref (first|last|before|after)")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip an entry's completion (cascades to children and ancestors)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return mutate(cmd, app, func(c *core.Core) (any, error) {
				switch strings.ToLower(strings.TrimSpace(set)) {
				case "":
					err = c.Toggle(id)
				case "done", "complete":
					err = c.SetComplete(id)
				case "undone", "incomplete":
					err = c.SetIncomplete(id)
				default:
					err = errors.New("invalid --set: " + set + " (want done|undone)")
				}
				if err != nil {
					return nil, err
				}
				return entryData(c, id)
			})
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "Set instead of flipping (done|undone)")
	return cmd
}

func newRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename an entry (renaming the root renames the list)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			name := strings.TrimSpace(args[1])
			if name == "" {
				return writeErr(cmd, errors.New("missing entry name"))
			}
			return mutate(cmd, app, func(c *core.Core) (any, error) {
				if err := c.Rename(id, name); err != nil {
					return nil, err
				}
				return entryData(c, id)
			})
		},
	}
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return mutate(cmd, app, func(c *core.Core) (any, error) {
				removed, err := c.DescendantsOf(id)
				if err != nil {
					return nil, err
				}
				if err := c.Delete(id); err != nil {
					return nil, err
				}
				return map[string]any{"id": int(id), "removed": len(removed) + 1}, nil
			})
		},
	}
	return cmd
}

func newMvCmd(app *App) *cobra.Command {
	var ref string
	pos := positionFlag{pos: tree.LastChild}

	cmd := &cobra.Command{
		Use:   "mv <id>",
		Short: "Move an entry and its subtree next to or under --ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(ref) == "" {
				return writeErr(cmd, errors.New("missing --ref"))
			}
			r, err := parseID(ref)
			if err != nil {
				return writeErr(cmd, err)
			}
			return mutate(cmd, app, func(c *core.Core) (any, error) {
				if err := c.MoveEntry(id, pos.pos, r); err != nil {
					return nil, err
				}
				return entryData(c, id)
			})
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "Reference entry id")
	cmd.Flags().Var(&pos, "pos", "Position relative to --ref (first|last|before|after)")
	return cmd
}

func newCpCmd(app *App) *cobra.Command {
	var ref string
	pos := positionFlag{pos: tree.LastChild}

	cmd := &cobra.Command{
		Use:   "cp <id>",
		Short: "Copy an entry and its subtree next to or under --ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(ref) == "" {
				return writeErr(cmd, errors.New("missing --ref"))
			}
			r, err := parseID(ref)
			if err != nil {
				return writeErr(cmd, err)
			}
			return mutate(cmd, app, func(c *core.Core) (any, error) {
				cp, err := c.CopyEntry(id, pos.pos, r)
				if err != nil {
					return nil, err
				}
				return entryData(c, cp)
			})
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "Reference entry id")
	cmd.Flags().Var(&pos, "pos", "Position relative to --ref (first|last|before|after)")
	return cmd
}

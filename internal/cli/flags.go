package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"todo-cli/internal/core"
	"todo-cli/internal/tree"
)

// positionFlag is a --pos value: first|last|before|after.
type positionFlag struct {
	pos tree.Position
}

var _ pflag.Value = (*positionFlag)(nil)

func (f *positionFlag) String() string { return f.pos.String() }

func (f *positionFlag) Set(s string) error {
	p, err := tree.ParsePosition(s)
	if err != nil {
		return err
	}
	f.pos = p
	return nil
}

func (f *positionFlag) Type() string { return "position" }

func parseID(s string) (tree.NodeID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return tree.NoNode, invalidIDError{id: s}
	}
	return tree.NodeID(n), nil
}

// refOr parses s as an entry id; empty means fallback.
func refOr(s string, fallback tree.NodeID) (tree.NodeID, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return parseID(s)
}

// viewOpts are the flags that pick the window of the list a command sees.
type viewOpts struct {
	root  string
	depth int
}

func (v *viewOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&v.root, "root", "", "Entry id to use as the display root (default: the list root)")
	cmd.Flags().IntVar(&v.depth, "depth", -1, "Levels shown below the display root (default: config depth, else 2)")
}

func (v *viewOpts) apply(app *App, c *core.Core) error {
	if strings.TrimSpace(v.root) != "" {
		id, err := parseID(v.root)
		if err != nil {
			return err
		}
		if err := c.ZoomIn(id); err != nil {
			return err
		}
	}
	switch {
	case v.depth >= 0:
		c.SetDepth(v.depth)
	default:
		cfg, err := app.config()
		if err != nil {
			return err
		}
		if cfg.DefaultDepth != nil {
			c.SetDepth(*cfg.DefaultDepth)
		}
	}
	return nil
}

package publish

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"todo-cli/internal/core"
	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/store"
)

// WriteText writes one formatted line per entry in the current view (display
// root down to the display depth). With unfinishedOnly, complete entries are
// left out.
func WriteText(w io.Writer, c *core.Core, f format.Formatter, unfinishedOnly bool) error {
	rows, err := c.Rows()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if unfinishedOnly && r.Complete {
			continue
		}
		e := model.Entry{Name: r.Name, Complete: r.Complete}
		bw.WriteString(f.Format(e, r.Depth, r.ChildCount > 0))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// TextFileName is the file PrintFile writes for a list named name.
func TextFileName(name string) string {
	return strings.TrimSuffix(core.FileName(name), core.Ext) + ".txt"
}

// PrintFile writes the current view to <list name>.txt in dir, replacing any
// previous print, and returns the path written.
func PrintFile(dir string, c *core.Core, f format.Formatter, unfinishedOnly bool) (string, error) {
	path := filepath.Join(dir, TextFileName(c.Name()))
	err := store.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WriteText(w, c, f, unfinishedOnly)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

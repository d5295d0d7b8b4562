package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/store"
	"todo-cli/internal/tree"
)

// Ext is the extension of saved lists.
const Ext = ".todo"

// Save writes the whole list, regardless of the current view.
func (c *Core) Save(w io.Writer) error {
	return c.tree.Encode(w, model.EntryCodec{})
}

func (c *Core) Bytes() ([]byte, error) {
	return c.tree.Bytes(model.EntryCodec{})
}

// Decode reads a list written by Save. The result is a fresh Core viewing
// the absolute root at DefaultDepth.
func Decode(r io.Reader) (*Core, error) {
	t, err := tree.Decode[model.Entry](r, model.EntryCodec{})
	if err != nil {
		return nil, err
	}
	return fromTree(t), nil
}

// Load reads the list stored at path.
func Load(path string) (*Core, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// SaveFile writes the list to path through a temp file, so a failed save
// leaves any previous file intact.
func (c *Core) SaveFile(path string) error {
	return store.WriteAtomic(path, 0o644, c.Save)
}

// FileName derives the file a list named name is saved to.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "untitled"
	}
	return name + Ext
}

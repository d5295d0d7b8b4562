package core

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"todo-cli/internal/tree"
)

func TestSave_WireFormat(t *testing.T) {
	t.Parallel()

	c := New("G")
	d, _ := c.NewEntry("D", tree.LastChild, c.Root())
	ch, _ := c.NewEntry("C", tree.LastChild, d)
	_ = c.SetComplete(ch)

	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := []byte{
		0, 0, 0, 1, 'G', 1, 0, 0, 0, 1,
		0, 0, 0, 1, 'D', 1, 0, 0, 0, 1,
		0, 0, 0, 1, 'C', 1, 0, 0, 0, 0,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("want %v\ngot  %v", want, buf.Bytes())
	}
}

func TestSaveFile_LoadRoundTrip(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	_ = c.Toggle(g.cheese)
	_ = c.ZoomIn(g.dairy)
	c.SetDepth(7)

	path := filepath.Join(t.TempDir(), FileName(c.Name()))
	if err := c.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if filepath.Base(path) != "Groceries.todo" {
		t.Fatalf("unexpected file name %q", filepath.Base(path))
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Saving ignores the view; loading resets it.
	if got.CurrentRoot() != got.Root() || got.Depth() != DefaultDepth {
		t.Fatalf("loaded view: current=%d depth=%d", got.CurrentRoot(), got.Depth())
	}
	want, _ := c.Export(c.Root())
	have, _ := got.Export(got.Root())
	if !reflect.DeepEqual(want, have) {
		t.Fatalf("round trip:\nwant %+v\ngot  %+v", want, have)
	}

	ents, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("leftover temp file: %s", e.Name())
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.todo")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.todo")
	if err := os.WriteFile(bad, []byte{0, 0, 0, 3, 'a'}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); !errors.Is(err, tree.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}

	// A complete byte of 2 is not a boolean.
	if _, err := Decode(bytes.NewReader([]byte{0, 0, 0, 1, 'a', 2, 0, 0, 0, 0})); !errors.Is(err, tree.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
}

func TestSaveFile_FailureKeepsPreviousFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "list.todo")
	c := New("list")
	if err := c.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	orig, _ := os.ReadFile(path)

	// A name over the string limit makes the encoder fail mid-write.
	_, _ = c.NewEntry(strings.Repeat("x", 16<<20+1), tree.LastChild, c.Root())
	if err := c.SaveFile(path); err == nil {
		t.Fatalf("expected SaveFile to fail")
	}
	now, _ := os.ReadFile(path)
	if !bytes.Equal(orig, now) {
		t.Fatalf("failed save changed the file on disk")
	}
	if c.Stats().Entries != 2 {
		t.Fatalf("failed save must leave the list alone")
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Groceries":  "Groceries.todo",
		" spaced ":   "spaced.todo",
		"a/b\\c":     "a_b_c.todo",
		"":           "untitled.todo",
		"..":         "untitled.todo",
		"Käse liste": "Käse liste.todo",
	}
	for in, want := range tests {
		if got := FileName(in); got != want {
			t.Fatalf("FileName(%q) = %q; want %q", in, got, want)
		}
	}
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := OpenCatalog(context.Background(), filepath.Join(t.TempDir(), "catalog.sqlite"))
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCatalog_RecordRecent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := openTestCatalog(t)
	dir := t.TempDir()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"Groceries", "Chores", "Trip"} {
		err := c.Record(ctx, CatalogEntry{
			Path:    filepath.Join(dir, name+".todo"),
			Name:    name,
			Entries: i + 1,
			SeenAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record(%s): %v", name, err)
		}
	}

	got, err := c.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Trip" || got[1].Name != "Chores" {
		t.Fatalf("unexpected recent: %+v", got)
	}
	if !got[0].SeenAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected SeenAt: %v", got[0].SeenAt)
	}

	// Re-recording refreshes instead of duplicating.
	err = c.Record(ctx, CatalogEntry{
		Path:      filepath.Join(dir, "Groceries.todo"),
		Name:      "Groceries",
		Entries:   4,
		Completed: 2,
		SeenAt:    base.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	all, err := c.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 lists, got %d", len(all))
	}
	if all[0].Name != "Groceries" || all[0].Entries != 4 || all[0].Completed != 2 {
		t.Fatalf("unexpected head: %+v", all[0])
	}
}

func TestCatalog_ForgetAndPrune(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := openTestCatalog(t)
	dir := t.TempDir()

	kept := filepath.Join(dir, "kept.todo")
	if err := os.WriteFile(kept, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, p := range []string{kept, filepath.Join(dir, "gone.todo"), filepath.Join(dir, "forgotten.todo")} {
		if err := c.Record(ctx, CatalogEntry{Path: p, Name: filepath.Base(p)}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	if err := c.Forget(ctx, filepath.Join(dir, "forgotten.todo")); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if err := c.Forget(ctx, filepath.Join(dir, "never.todo")); err != nil {
		t.Fatalf("Forget unknown: %v", err)
	}
	n, err := c.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pruned, got %d", n)
	}
	all, _ := c.Recent(ctx, 0)
	if len(all) != 1 || all[0].Path != kept {
		t.Fatalf("unexpected catalog: %+v", all)
	}
}

func TestCatalog_RejectsEmptyPath(t *testing.T) {
	t.Parallel()

	c := openTestCatalog(t)
	if err := c.Record(context.Background(), CatalogEntry{Path: "  "}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := OpenCatalog(context.Background(), ""); err == nil {
		t.Fatalf("expected error")
	}
}

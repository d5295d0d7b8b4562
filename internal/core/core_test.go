package core

import (
	"errors"
	"reflect"
	"testing"

	"todo-cli/internal/model"
	"todo-cli/internal/tree"
)

type groceries struct {
	c                         *Core
	root, milk, dairy, cheese tree.NodeID
}

func newGroceries(t *testing.T) groceries {
	t.Helper()
	c := New("Groceries")
	g := groceries{c: c, root: c.Root()}
	var err error
	if g.milk, err = c.NewEntry("Milk", tree.LastChild, g.root); err != nil {
		t.Fatalf("NewEntry(Milk): %v", err)
	}
	if g.dairy, err = c.NewEntry("Dairy", tree.LastChild, g.root); err != nil {
		t.Fatalf("NewEntry(Dairy): %v", err)
	}
	if g.cheese, err = c.NewEntry("Cheese", tree.LastChild, g.dairy); err != nil {
		t.Fatalf("NewEntry(Cheese): %v", err)
	}
	return g
}

func complete(t *testing.T, c *Core, id tree.NodeID) bool {
	t.Helper()
	e, err := c.Entry(id)
	if err != nil {
		t.Fatalf("Entry(%d): %v", id, err)
	}
	return e.Complete
}

func TestNew(t *testing.T) {
	t.Parallel()

	c := New("Groceries")
	if c.Name() != "Groceries" {
		t.Fatalf("Name: %q", c.Name())
	}
	if c.Depth() != DefaultDepth || c.CurrentRoot() != c.Root() {
		t.Fatalf("fresh core: depth=%d current=%d root=%d", c.Depth(), c.CurrentRoot(), c.Root())
	}
	if complete(t, c, c.Root()) {
		t.Fatalf("root must start incomplete")
	}
}

func TestGroceriesScenario_Toggle(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c

	if err := c.Toggle(g.milk); err != nil {
		t.Fatalf("Toggle(Milk): %v", err)
	}
	if !complete(t, c, g.milk) || complete(t, c, g.root) {
		t.Fatalf("after Milk: milk=%v root=%v", complete(t, c, g.milk), complete(t, c, g.root))
	}

	if err := c.Toggle(g.cheese); err != nil {
		t.Fatalf("Toggle(Cheese): %v", err)
	}
	if !complete(t, c, g.dairy) {
		t.Fatalf("Dairy should complete with its only child")
	}
	if !complete(t, c, g.root) {
		t.Fatalf("root should complete once Milk and Dairy are complete")
	}

	got, err := c.EntriesInfo()
	if err != nil {
		t.Fatalf("EntriesInfo: %v", err)
	}
	want := []tree.NodeInfo{
		{ID: g.root, Depth: 0, ChildCount: 2},
		{ID: g.milk, Depth: 1, ChildCount: 0},
		{ID: g.dairy, Depth: 1, ChildCount: 1},
		{ID: g.cheese, Depth: 2, ChildCount: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EntriesInfo:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestGroceriesScenario_Move(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	if err := c.MoveEntry(g.milk, tree.FirstChild, g.dairy); err != nil {
		t.Fatalf("MoveEntry: %v", err)
	}
	desc, _ := c.DescendantsOf(g.root)
	found := false
	for _, id := range desc {
		if id == g.milk {
			found = true
		}
	}
	if !found {
		t.Fatalf("Milk missing from descendants of root: %v", desc)
	}
	children, _ := c.ChildrenOf(g.root)
	if !reflect.DeepEqual(children, []tree.NodeID{g.dairy}) {
		t.Fatalf("root children: %v", children)
	}
	if p, _, _ := c.ParentID(g.milk); p != g.dairy {
		t.Fatalf("Milk parent: want %d, got %d", g.dairy, p)
	}
}

func TestToggle_DownwardCascade(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	if err := c.Toggle(g.root); err != nil {
		t.Fatalf("Toggle(root): %v", err)
	}
	for _, id := range []tree.NodeID{g.root, g.milk, g.dairy, g.cheese} {
		if !complete(t, c, id) {
			t.Fatalf("node %d should be complete", id)
		}
	}
	if err := c.Toggle(g.dairy); err != nil {
		t.Fatalf("Toggle(dairy): %v", err)
	}
	if complete(t, c, g.dairy) || complete(t, c, g.cheese) {
		t.Fatalf("dairy subtree should be incomplete")
	}
	if complete(t, c, g.root) {
		t.Fatalf("root should be cleared when a child goes incomplete")
	}
	if !complete(t, c, g.milk) {
		t.Fatalf("sibling Milk must be untouched")
	}
}

func TestToggle_TwiceRestores(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	_ = c.Toggle(g.milk)
	before, _ := c.Rows()

	// Dairy's subtree is uniform, so the downward cascade loses nothing.
	for _, id := range []tree.NodeID{g.cheese, g.milk, g.dairy} {
		if err := c.Toggle(id); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if err := c.Toggle(id); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		after, _ := c.Rows()
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("double toggle of %d changed state:\nbefore %+v\nafter  %+v", id, before, after)
		}
	}
}

func TestSetComplete_NoChangeStopsEarly(t *testing.T) {
	t.Parallel()

	c := New("r")
	a, _ := c.NewEntry("a", tree.LastChild, c.Root())
	b, _ := c.NewEntry("b", tree.LastChild, c.Root())
	_ = c.SetComplete(a)
	_ = c.SetComplete(b)
	if !complete(t, c, c.Root()) {
		t.Fatalf("root should be complete")
	}

	// Already complete: nothing to do, nothing to propagate.
	if err := c.SetComplete(a); err != nil {
		t.Fatalf("SetComplete: %v", err)
	}
	if err := c.SetIncomplete(99); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := c.Toggle(99); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStructuralMutations_KeepCompletion(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	_ = c.Toggle(g.root)

	// A new incomplete child reopens its ancestors.
	eggs, err := c.NewEntry("Eggs", tree.LastChild, g.dairy)
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if complete(t, c, g.dairy) || complete(t, c, g.root) {
		t.Fatalf("adding an open child should clear dairy and root")
	}

	// Removing the only open child closes them again.
	if err := c.Delete(eggs); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !complete(t, c, g.dairy) || !complete(t, c, g.root) {
		t.Fatalf("deleting the open child should complete dairy and root")
	}

	// A node left without children keeps its flag.
	if err := c.Delete(g.cheese); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !complete(t, c, g.dairy) {
		t.Fatalf("childless dairy should keep its flag")
	}

	// Same at the top level.
	_ = c.SetIncomplete(g.milk)
	if complete(t, c, g.root) {
		t.Fatalf("root should be open")
	}
	_ = c.SetComplete(g.milk)
	open, _ := c.NewEntry("Open", tree.LastChild, c.Root())
	_ = c.Delete(open)
	if !complete(t, c, g.root) {
		t.Fatalf("root should be complete again")
	}
}

func TestMoveEntry_SettlesBothChains(t *testing.T) {
	t.Parallel()

	c := New("r")
	a, _ := c.NewEntry("a", tree.LastChild, c.Root())
	a1, _ := c.NewEntry("a1", tree.LastChild, a)
	a2, _ := c.NewEntry("a2", tree.LastChild, a)
	b, _ := c.NewEntry("b", tree.LastChild, c.Root())
	b1, _ := c.NewEntry("b1", tree.LastChild, b)
	_ = c.SetComplete(a1)
	_ = c.SetComplete(b1)

	// Moving the open a2 out of a completes a and opens b.
	if err := c.MoveEntry(a2, tree.LastChild, b); err != nil {
		t.Fatalf("MoveEntry: %v", err)
	}
	if !complete(t, c, a) {
		t.Fatalf("a should be complete")
	}
	if complete(t, c, b) || complete(t, c, c.Root()) {
		t.Fatalf("b and root should be open")
	}

	if err := c.MoveEntry(b, tree.LastChild, a2); !errors.Is(err, tree.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if _, err := c.CopyEntry(b, tree.LastChild, a2); err != nil {
		t.Fatalf("CopyEntry into own subtree: %v", err)
	}
}

func TestCopyEntry(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	_ = c.SetComplete(g.milk)
	cp, err := c.CopyEntry(g.dairy, tree.SiblingBefore, g.milk)
	if err != nil {
		t.Fatalf("CopyEntry: %v", err)
	}
	children, _ := c.ChildrenOf(g.root)
	if !reflect.DeepEqual(children, []tree.NodeID{cp, g.milk, g.dairy}) {
		t.Fatalf("children: %v", children)
	}
	n, _ := c.Export(cp)
	want := model.Node{Name: "Dairy", Children: []model.Node{{Name: "Cheese"}}}
	if !reflect.DeepEqual(n, want) {
		t.Fatalf("copy: want %+v, got %+v", want, n)
	}
	if _, err := c.CopyEntry(g.dairy, tree.SiblingAfter, g.root); !errors.Is(err, tree.ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestDelete_RefusesViewRoots(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	if err := c.Delete(g.root); !errors.Is(err, ErrDisplayRoot) {
		t.Fatalf("deleting absolute root: expected ErrDisplayRoot, got %v", err)
	}
	if err := c.ZoomIn(g.cheese); err != nil {
		t.Fatalf("ZoomIn: %v", err)
	}
	if c.CurrentRoot() != g.cheese {
		t.Fatalf("CurrentRoot: want %d, got %d", g.cheese, c.CurrentRoot())
	}
	for _, id := range []tree.NodeID{g.cheese, g.dairy} {
		if err := c.Delete(id); !errors.Is(err, ErrDisplayRoot) {
			t.Fatalf("Delete(%d): expected ErrDisplayRoot, got %v", id, err)
		}
	}
	if !c.Contains(g.cheese) || !c.Contains(g.dairy) {
		t.Fatalf("refused delete removed nodes")
	}
	if err := c.Delete(g.milk); err != nil {
		t.Fatalf("Delete(Milk): %v", err)
	}
	if err := c.Delete(g.milk); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestZoomAndDepth(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	if c.ZoomOut() {
		t.Fatalf("ZoomOut at the absolute root should report false")
	}
	if err := c.ZoomIn(g.dairy); err != nil {
		t.Fatalf("ZoomIn: %v", err)
	}
	if err := c.ZoomIn(g.dairy); err != nil {
		t.Fatalf("ZoomIn twice: %v", err)
	}
	ids, _ := c.EntryIDs()
	if !reflect.DeepEqual(ids, []tree.NodeID{g.dairy, g.cheese}) {
		t.Fatalf("zoomed view: %v", ids)
	}
	if got := c.ZoomStack(); !reflect.DeepEqual(got, []tree.NodeID{g.root, g.dairy}) {
		t.Fatalf("ZoomStack: %v", got)
	}
	if !c.ZoomOut() || c.CurrentRoot() != g.root {
		t.Fatalf("ZoomOut should return to root")
	}
	if err := c.ZoomIn(42); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	c.DecDepth(1)
	ids, _ = c.EntryIDs()
	if !reflect.DeepEqual(ids, []tree.NodeID{g.root, g.milk, g.dairy}) {
		t.Fatalf("depth 1 view: %v", ids)
	}
	c.DecDepth(5)
	if c.Depth() != 0 {
		t.Fatalf("depth should floor at 0; got %d", c.Depth())
	}
	ids, _ = c.EntryIDs()
	if !reflect.DeepEqual(ids, []tree.NodeID{g.root}) {
		t.Fatalf("depth 0 view: %v", ids)
	}
	c.IncDepth(3)
	if c.Depth() != 3 {
		t.Fatalf("IncDepth: got %d", c.Depth())
	}
}

func TestRenameAndStats(t *testing.T) {
	t.Parallel()

	g := newGroceries(t)
	c := g.c
	if err := c.Rename(g.root, "Shopping"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if c.Name() != "Shopping" {
		t.Fatalf("Name: %q", c.Name())
	}
	_ = c.Toggle(g.dairy)
	if got, want := c.Stats(), (Stats{Entries: 4, Completed: 2}); got != want {
		t.Fatalf("Stats: want %+v, got %+v", want, got)
	}
	if err := c.Rename(77, "x"); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

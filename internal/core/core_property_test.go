package core

import (
	"bytes"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"todo-cli/internal/tree"
)

// checkInvariant fails if any parent's flag disagrees with its children.
func checkInvariant(t *rapid.T, c *Core) {
	ids, _ := c.tree.SubTreeDepth(c.Root(), c.tree.Len())
	for _, id := range ids {
		children, _ := c.ChildrenOf(id)
		if len(children) == 0 {
			continue
		}
		e, _ := c.Entry(id)
		if e.Complete != c.allChildrenComplete(id) {
			t.Fatalf("node %d complete=%v but children say %v", id, e.Complete, !e.Complete)
		}
	}
}

func liveIDs(c *Core) []tree.NodeID {
	ids, _ := c.tree.SubTreeDepth(c.Root(), c.tree.Len())
	return ids
}

// mutate applies one random operation. Errors are expected for illegal
// requests and must leave the tree consistent.
func mutate(t *rapid.T, c *Core) {
	ids := liveIDs(c)
	id := rapid.SampledFrom(ids).Draw(t, "id")
	ref := rapid.SampledFrom(ids).Draw(t, "ref")
	pos := tree.Position(rapid.IntRange(0, 3).Draw(t, "pos"))
	switch rapid.IntRange(0, 5).Draw(t, "op") {
	case 0, 1:
		_, _ = c.NewEntry("n", pos, ref)
	case 2:
		_ = c.Toggle(id)
	case 3:
		_ = c.Delete(id)
	case 4:
		_ = c.MoveEntry(id, pos, ref)
	case 5:
		if c.tree.Len() < 60 {
			_, _ = c.CopyEntry(id, pos, ref)
		}
	}
}

func TestProperty_CompletionInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New("root")
		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			mutate(t, c)
			checkInvariant(t, c)
		}
	})
}

func TestProperty_LeafToggleIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New("root")
		steps := rapid.IntRange(0, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			mutate(t, c)
		}
		var leaves []tree.NodeID
		for _, id := range liveIDs(c) {
			if ch, _ := c.ChildrenOf(id); len(ch) == 0 {
				leaves = append(leaves, id)
			}
		}
		leaf := rapid.SampledFrom(leaves).Draw(t, "leaf")

		before, _ := c.Export(c.Root())
		_ = c.Toggle(leaf)
		_ = c.Toggle(leaf)
		after, _ := c.Export(c.Root())
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("double toggle of leaf %d changed the list", leaf)
		}
	})
}

func TestProperty_SaveLoadRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New(rapid.StringMatching(`[A-Za-z äö✓]{0,12}`).Draw(t, "name"))
		steps := rapid.IntRange(0, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			mutate(t, c)
		}
		b, err := c.Bytes()
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		back, err := Decode(bytes.NewReader(b))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		want, _ := c.Export(c.Root())
		got, _ := back.Export(back.Root())
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("round trip changed the list")
		}
	})
}

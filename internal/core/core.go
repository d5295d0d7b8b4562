// Package core is the task store: a tree of entries plus the state of the
// current view (which node is zoomed into and how deep the listing goes).
package core

import (
	"todo-cli/internal/model"
	"todo-cli/internal/tree"
)

// DefaultDepth is how many levels below the display root a fresh or freshly
// loaded list shows.
const DefaultDepth = 2

// Core is one todo list: the entry tree plus the zoom stack and depth window.
type Core struct {
	tree  *tree.Tree[model.Entry]
	roots []tree.NodeID
	depth int
}

// Stats summarises a list for catalogs and status lines.
type Stats struct {
	Entries   int `json:"entries" yaml:"entries"`
	Completed int `json:"completed" yaml:"completed"`
}

// New returns a list with a single incomplete root named name.
func New(name string) *Core {
	return fromTree(tree.NewWithRoot(model.Entry{Name: name}))
}

func fromTree(t *tree.Tree[model.Entry]) *Core {
	return &Core{
		tree:  t,
		roots: []tree.NodeID{t.Root()},
		depth: DefaultDepth,
	}
}

// CurrentRoot is the node at the top of the current view.
func (c *Core) CurrentRoot() tree.NodeID {
	return c.roots[len(c.roots)-1]
}

// Root is the absolute root of the list.
func (c *Core) Root() tree.NodeID { return c.tree.Root() }

// Name is the name of the absolute root, which is also the list's name.
func (c *Core) Name() string {
	e, _ := c.tree.DataAt(c.tree.Root())
	return e.Name
}

func (c *Core) Entry(id tree.NodeID) (model.Entry, error) {
	return c.tree.DataAt(id)
}

// ParentID returns id's parent; ok is false for the absolute root.
func (c *Core) ParentID(id tree.NodeID) (parent tree.NodeID, ok bool, err error) {
	return c.tree.ParentOf(id)
}

func (c *Core) ChildrenOf(id tree.NodeID) ([]tree.NodeID, error) {
	return c.tree.ChildrenOf(id)
}

func (c *Core) DescendantsOf(id tree.NodeID) ([]tree.NodeID, error) {
	return c.tree.DescendantsOf(id)
}

func (c *Core) Contains(id tree.NodeID) bool { return c.tree.Contains(id) }

// EntriesInfo lists the current view: the display root and everything at
// most Depth levels below it, in display order.
func (c *Core) EntriesInfo() ([]tree.NodeInfo, error) {
	return c.tree.SubTreeDepthInfo(c.CurrentRoot(), c.depth)
}

func (c *Core) EntryIDs() ([]tree.NodeID, error) {
	return c.tree.SubTreeDepth(c.CurrentRoot(), c.depth)
}

// Rows is EntriesInfo joined with each entry's payload.
func (c *Core) Rows() ([]model.Row, error) {
	infos, err := c.EntriesInfo()
	if err != nil {
		return nil, err
	}
	out := make([]model.Row, 0, len(infos))
	for _, in := range infos {
		e, err := c.tree.DataAt(in.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Row{
			ID:         int(in.ID),
			Depth:      in.Depth,
			ChildCount: in.ChildCount,
			Name:       e.Name,
			Complete:   e.Complete,
		})
	}
	return out, nil
}

// Export returns the whole subtree at id as nested nodes, ignoring the
// display depth.
func (c *Core) Export(id tree.NodeID) (model.Node, error) {
	e, err := c.tree.DataAt(id)
	if err != nil {
		return model.Node{}, err
	}
	n := model.Node{Name: e.Name, Complete: e.Complete}
	children, err := c.tree.ChildrenOf(id)
	if err != nil {
		return model.Node{}, err
	}
	for _, ch := range children {
		cn, err := c.Export(ch)
		if err != nil {
			return model.Node{}, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

func (c *Core) Stats() Stats {
	var s Stats
	ids, _ := c.tree.SubTreeDepth(c.tree.Root(), c.tree.Len())
	for _, id := range ids {
		s.Entries++
		if e, _ := c.tree.DataAt(id); e.Complete {
			s.Completed++
		}
	}
	return s
}

// Depth

func (c *Core) Depth() int { return c.depth }

func (c *Core) SetDepth(n int) {
	if n < 0 {
		n = 0
	}
	c.depth = n
}

func (c *Core) IncDepth(n int) { c.SetDepth(c.depth + n) }

// DecDepth lowers the depth, stopping at 0.
func (c *Core) DecDepth(n int) { c.SetDepth(c.depth - n) }

// Zoom

// ZoomIn makes id the display root. The previous root is kept so ZoomOut can
// return to it.
func (c *Core) ZoomIn(id tree.NodeID) error {
	if _, err := c.tree.DataAt(id); err != nil {
		return err
	}
	if id == c.CurrentRoot() {
		return nil
	}
	c.roots = append(c.roots, id)
	return nil
}

// ZoomOut returns to the previous display root. It reports false when the
// view is already at the bottom of the stack.
func (c *Core) ZoomOut() bool {
	if len(c.roots) <= 1 {
		return false
	}
	c.roots = c.roots[:len(c.roots)-1]
	return true
}

// ZoomStack is the display-root history, outermost first.
func (c *Core) ZoomStack() []tree.NodeID {
	out := make([]tree.NodeID, len(c.roots))
	copy(out, c.roots)
	return out
}

// Mutations

// NewEntry inserts an incomplete entry named name at pos relative to ref.
func (c *Core) NewEntry(name string, pos tree.Position, ref tree.NodeID) (tree.NodeID, error) {
	id, err := c.tree.Insert(model.Entry{Name: name}, pos, ref)
	if err != nil {
		return tree.NoNode, err
	}
	c.settleFromParentOf(id, false)
	return id, nil
}

func (c *Core) Rename(id tree.NodeID, name string) error {
	e, err := c.tree.DataAtMut(id)
	if err != nil {
		return err
	}
	e.Name = name
	return nil
}

// Delete removes id and its subtree. It refuses anything the current view
// hangs off: the display root, an entry on the zoom stack, or an ancestor of
// one of those.
func (c *Core) Delete(id tree.NodeID) error {
	if _, err := c.tree.DataAt(id); err != nil {
		return err
	}
	for _, r := range c.roots {
		if r == id || c.tree.IsAncestor(id, r) {
			return displayRootErr(id)
		}
	}
	parent, _, _ := c.tree.ParentOf(id)
	if err := c.tree.Remove(id); err != nil {
		return err
	}
	c.settle(parent, false)
	return nil
}

// MoveEntry relocates the subtree at id to pos relative to ref.
func (c *Core) MoveEntry(id tree.NodeID, pos tree.Position, ref tree.NodeID) error {
	oldParent, _, _ := c.tree.ParentOf(id)
	if err := c.tree.MoveTo(id, pos, ref); err != nil {
		return err
	}
	// Both chains may share ancestors, so neither walk can stop early.
	c.settle(oldParent, true)
	c.settleFromParentOf(id, true)
	return nil
}

// CopyEntry places a deep copy of the subtree at id at pos relative to ref.
func (c *Core) CopyEntry(id tree.NodeID, pos tree.Position, ref tree.NodeID) (tree.NodeID, error) {
	cp, err := c.tree.CloneTo(id, pos, ref)
	if err != nil {
		return tree.NoNode, err
	}
	c.settleFromParentOf(cp, false)
	return cp, nil
}

package core

import "todo-cli/internal/tree"

// A parent is complete exactly when all of its children are. Leaves carry
// their own flag. Every mutation below keeps that true.

// Toggle flips id's completion, cascading to its subtree and ancestors.
func (c *Core) Toggle(id tree.NodeID) error {
	e, err := c.tree.DataAt(id)
	if err != nil {
		return err
	}
	if e.Complete {
		return c.SetIncomplete(id)
	}
	return c.SetComplete(id)
}

// SetComplete marks id and its subtree complete, then completes each
// ancestor whose children are now all complete.
func (c *Core) SetComplete(id tree.NodeID) error {
	changed, err := c.setDown(id, true)
	if err != nil || !changed {
		return err
	}
	cur := id
	for {
		parent, ok, _ := c.tree.ParentOf(cur)
		if !ok {
			return nil
		}
		p, _ := c.tree.DataAtMut(parent)
		if p.Complete || !c.allChildrenComplete(parent) {
			return nil
		}
		p.Complete = true
		cur = parent
	}
}

// SetIncomplete marks id and its subtree incomplete, then clears every
// complete ancestor up to the first one that already was incomplete.
func (c *Core) SetIncomplete(id tree.NodeID) error {
	changed, err := c.setDown(id, false)
	if err != nil || !changed {
		return err
	}
	cur := id
	for {
		parent, ok, _ := c.tree.ParentOf(cur)
		if !ok {
			return nil
		}
		p, _ := c.tree.DataAtMut(parent)
		if !p.Complete {
			return nil
		}
		p.Complete = false
		cur = parent
	}
}

// setDown sets id and its descendants to v. A node already at v is left
// alone together with its subtree. It reports whether id itself changed.
func (c *Core) setDown(id tree.NodeID, v bool) (bool, error) {
	e, err := c.tree.DataAtMut(id)
	if err != nil {
		return false, err
	}
	if e.Complete == v {
		return false, nil
	}
	stack := []tree.NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e, _ := c.tree.DataAtMut(cur)
		if e.Complete == v {
			continue
		}
		e.Complete = v
		children, _ := c.tree.ChildrenOf(cur)
		stack = append(stack, children...)
	}
	return true, nil
}

func (c *Core) allChildrenComplete(id tree.NodeID) bool {
	children, _ := c.tree.ChildrenOf(id)
	for _, ch := range children {
		if e, _ := c.tree.DataAt(ch); !e.Complete {
			return false
		}
	}
	return true
}

func (c *Core) settleFromParentOf(id tree.NodeID, full bool) {
	if parent, ok, _ := c.tree.ParentOf(id); ok {
		c.settle(parent, full)
	}
}

// settle recomputes completion from id up to the root after id's children
// changed. Unless full is set it stops at the first node that keeps its
// state. A node with no children keeps its own flag.
func (c *Core) settle(id tree.NodeID, full bool) {
	for cur := id; cur != tree.NoNode; {
		children, err := c.tree.ChildrenOf(cur)
		if err != nil {
			return
		}
		changed := false
		if len(children) > 0 {
			e, _ := c.tree.DataAtMut(cur)
			want := c.allChildrenComplete(cur)
			if e.Complete != want {
				e.Complete = want
				changed = true
			}
		}
		if !changed && !full {
			return
		}
		parent, ok, _ := c.tree.ParentOf(cur)
		if !ok {
			return
		}
		cur = parent
	}
}

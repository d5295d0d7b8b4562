// Package tree is an arena-backed rooted tree with ordered children.
//
// Every node lives in one slice owned by the Tree and is addressed by a
// NodeID. Relationships are ids, never pointers, so moving a subtree only
// rewrites two child lists and a parent link.
package tree

import "fmt"

// NodeID addresses a node. It stays valid for the node's lifetime; slots of
// removed nodes are reused by later inserts.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// NodeInfo describes one row of a bounded-depth listing.
type NodeInfo struct {
	ID         NodeID `json:"id" yaml:"id"`
	Depth      int    `json:"depth" yaml:"depth"`
	ChildCount int    `json:"childCount" yaml:"childCount"`
}

type node[T any] struct {
	data     T
	parent   NodeID
	children []NodeID
	live     bool
}

// Tree is an arena of nodes addressed by NodeID, with one fixed root.
type Tree[T any] struct {
	nodes []node[T]
	free  []NodeID
	root  NodeID
	count int
}

// NewWithRoot returns a tree holding a single root node.
func NewWithRoot[T any](payload T) *Tree[T] {
	t := &Tree[T]{}
	t.root = t.alloc(payload, NoNode)
	return t
}

func (t *Tree[T]) alloc(payload T, parent NodeID) NodeID {
	n := node[T]{data: payload, parent: parent, live: true}
	t.count++
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree[T]) get(id NodeID) (*node[T], error) {
	if id < 0 || int(id) >= len(t.nodes) || !t.nodes[id].live {
		return nil, notFound(id)
	}
	return &t.nodes[id], nil
}

func (t *Tree[T]) Root() NodeID { return t.root }

// Len is the number of live nodes.
func (t *Tree[T]) Len() int { return t.count }

func (t *Tree[T]) Contains(id NodeID) bool {
	_, err := t.get(id)
	return err == nil
}

// checkPosition validates pos against an existing reference node.
func (t *Tree[T]) checkPosition(pos Position, ref NodeID) error {
	if !pos.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	if pos.IsSibling() && ref == t.root {
		return fmt.Errorf("%w: %v relative to root", ErrInvalidPosition, pos)
	}
	return nil
}

// attach links a detached node at pos relative to ref. Both must exist and
// pos must already be validated.
func (t *Tree[T]) attach(id NodeID, pos Position, ref NodeID) {
	switch pos {
	case FirstChild:
		r := &t.nodes[ref]
		r.children = append([]NodeID{id}, r.children...)
		t.nodes[id].parent = ref
	case LastChild:
		r := &t.nodes[ref]
		r.children = append(r.children, id)
		t.nodes[id].parent = ref
	case SiblingBefore, SiblingAfter:
		parent := t.nodes[ref].parent
		p := &t.nodes[parent]
		idx := indexOf(p.children, ref)
		if pos == SiblingAfter {
			idx++
		}
		p.children = append(p.children, 0)
		copy(p.children[idx+1:], p.children[idx:])
		p.children[idx] = id
		t.nodes[id].parent = parent
	}
}

func (t *Tree[T]) detach(id NodeID) {
	parent := t.nodes[id].parent
	if parent == NoNode {
		return
	}
	p := &t.nodes[parent]
	if idx := indexOf(p.children, id); idx >= 0 {
		p.children = append(p.children[:idx], p.children[idx+1:]...)
	}
	t.nodes[id].parent = NoNode
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}

// Insert creates a node holding payload at pos relative to ref.
func (t *Tree[T]) Insert(payload T, pos Position, ref NodeID) (NodeID, error) {
	if _, err := t.get(ref); err != nil {
		return NoNode, err
	}
	if err := t.checkPosition(pos, ref); err != nil {
		return NoNode, err
	}
	id := t.alloc(payload, NoNode)
	t.attach(id, pos, ref)
	return id, nil
}

// Remove deletes id and its whole subtree.
func (t *Tree[T]) Remove(id NodeID) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	if id == t.root {
		return ErrCannotRemoveRoot
	}
	t.detach(id)

	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.nodes[cur].children...)
		t.nodes[cur] = node[T]{parent: NoNode}
		t.free = append(t.free, cur)
		t.count--
	}
	return nil
}

// MoveTo detaches the subtree at id and reattaches it at pos relative to ref.
// ref may not be id or one of its descendants. Every live node descends from
// the root, so moving the root is always a cycle.
func (t *Tree[T]) MoveTo(id NodeID, pos Position, ref NodeID) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	if _, err := t.get(ref); err != nil {
		return err
	}
	if ref == id || t.IsAncestor(id, ref) {
		return fmt.Errorf("%w: %d into %d", ErrCycle, id, ref)
	}
	if err := t.checkPosition(pos, ref); err != nil {
		return err
	}
	t.detach(id)
	t.attach(id, pos, ref)
	return nil
}

// CloneTo deep-copies the subtree at id (payloads are copied by assignment)
// and inserts the copy at pos relative to ref. ref may lie inside the source
// subtree; the source is snapshotted first so the copy never includes itself.
func (t *Tree[T]) CloneTo(id NodeID, pos Position, ref NodeID) (NodeID, error) {
	if _, err := t.get(id); err != nil {
		return NoNode, err
	}
	if _, err := t.get(ref); err != nil {
		return NoNode, err
	}
	if err := t.checkPosition(pos, ref); err != nil {
		return NoNode, err
	}

	type snap struct {
		data   T
		parent int // index into snaps; -1 for the subtree root
	}
	var snaps []snap
	var walk func(cur NodeID, parent int)
	walk = func(cur NodeID, parent int) {
		idx := len(snaps)
		snaps = append(snaps, snap{data: t.nodes[cur].data, parent: parent})
		for _, ch := range t.nodes[cur].children {
			walk(ch, idx)
		}
	}
	walk(id, -1)

	ids := make([]NodeID, len(snaps))
	for i, s := range snaps {
		nid := t.alloc(s.data, NoNode)
		ids[i] = nid
		if s.parent < 0 {
			t.attach(nid, pos, ref)
			continue
		}
		t.attach(nid, LastChild, ids[s.parent])
	}
	return ids[0], nil
}

func (t *Tree[T]) DataAt(id NodeID) (T, error) {
	n, err := t.get(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return n.data, nil
}

// DataAtMut returns a pointer into the arena. It is invalidated by the next
// Insert or CloneTo, which may grow the arena.
func (t *Tree[T]) DataAtMut(id NodeID) (*T, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	return &n.data, nil
}

// ParentOf returns the parent of id; ok is false only for the root.
func (t *Tree[T]) ParentOf(id NodeID) (parent NodeID, ok bool, err error) {
	n, err := t.get(id)
	if err != nil {
		return NoNode, false, err
	}
	if n.parent == NoNode {
		return NoNode, false, nil
	}
	return n.parent, true, nil
}

// ChildrenOf returns a copy of id's ordered child list.
func (t *Tree[T]) ChildrenOf(id NodeID) ([]NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out, nil
}

// DescendantsOf lists every node below id in pre-order, excluding id.
func (t *Tree[T]) DescendantsOf(id NodeID) ([]NodeID, error) {
	if _, err := t.get(id); err != nil {
		return nil, err
	}
	out := []NodeID{}
	t.walk(id, -1, func(cur NodeID, depth int) {
		if depth > 0 {
			out = append(out, cur)
		}
	})
	return out, nil
}

// IsAncestor reports whether anc is a proper ancestor of id.
func (t *Tree[T]) IsAncestor(anc, id NodeID) bool {
	if !t.Contains(anc) || !t.Contains(id) {
		return false
	}
	for cur := t.nodes[id].parent; cur != NoNode; cur = t.nodes[cur].parent {
		if cur == anc {
			return true
		}
	}
	return false
}

// DepthOf is the number of edges between id and the root.
func (t *Tree[T]) DepthOf(id NodeID) (int, error) {
	if _, err := t.get(id); err != nil {
		return 0, err
	}
	d := 0
	for cur := t.nodes[id].parent; cur != NoNode; cur = t.nodes[cur].parent {
		d++
	}
	return d, nil
}

// SubTreeDepth lists id and its descendants at most maxDepth edges below it,
// in pre-order. maxDepth 0 yields only id.
func (t *Tree[T]) SubTreeDepth(id NodeID, maxDepth int) ([]NodeID, error) {
	if _, err := t.get(id); err != nil {
		return nil, err
	}
	out := []NodeID{}
	t.walk(id, clampDepth(maxDepth), func(cur NodeID, _ int) {
		out = append(out, cur)
	})
	return out, nil
}

// SubTreeDepthInfo is SubTreeDepth with each node's relative depth and
// direct child count.
func (t *Tree[T]) SubTreeDepthInfo(id NodeID, maxDepth int) ([]NodeInfo, error) {
	if _, err := t.get(id); err != nil {
		return nil, err
	}
	out := []NodeInfo{}
	t.walk(id, clampDepth(maxDepth), func(cur NodeID, depth int) {
		out = append(out, NodeInfo{
			ID:         cur,
			Depth:      depth,
			ChildCount: len(t.nodes[cur].children),
		})
	})
	return out, nil
}

func clampDepth(d int) int {
	if d < 0 {
		return 0
	}
	return d
}

// walk visits id and its subtree in pre-order. maxDepth < 0 means unbounded.
func (t *Tree[T]) walk(id NodeID, maxDepth int, fn func(id NodeID, depth int)) {
	var rec func(cur NodeID, depth int)
	rec = func(cur NodeID, depth int) {
		fn(cur, depth)
		if maxDepth >= 0 && depth >= maxDepth {
			return
		}
		for _, ch := range t.nodes[cur].children {
			rec(ch, depth+1)
		}
	}
	rec(id, 0)
}

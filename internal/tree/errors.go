package tree

import (
	"errors"
	"fmt"

	"todo-cli/internal/bytecodec"
)

var (
	// ErrNotFound indicates that an id does not name a live node.
	ErrNotFound = errors.New("node not found")

	// ErrInvalidPosition indicates a sibling-relative position requested
	// against the root (which has no siblings), or an unknown Position.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrCycle indicates a move that would make a node its own ancestor.
	ErrCycle = errors.New("move would create a cycle")

	// ErrCannotRemoveRoot indicates an attempt to delete the tree root.
	ErrCannotRemoveRoot = errors.New("cannot remove root")

	// ErrCorruptData indicates a malformed or truncated serialized tree.
	// It is the codec's sentinel so errors.Is matches either name.
	ErrCorruptData = bytecodec.ErrCorrupt
)

func notFound(id NodeID) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}

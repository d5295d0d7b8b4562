package core

import (
	"errors"
	"fmt"

	"todo-cli/internal/tree"
)

// ErrDisplayRoot is returned when deleting a node the current view depends
// on: the display root, anything on the zoom stack, or one of their ancestors.
var ErrDisplayRoot = errors.New("cannot delete the display root")

func displayRootErr(id tree.NodeID) error {
	return fmt.Errorf("%w: %d", ErrDisplayRoot, id)
}

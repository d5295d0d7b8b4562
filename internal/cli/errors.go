package cli

import (
	"errors"
	"fmt"
)

var errMissingFile = errors.New("missing --file (or set TODO_FILE)")

type invalidIDError struct {
	id string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid entry id: %q (want a non-negative integer, see `todo ls`)", e.id)
}

type fileExistsError struct {
	path string
}

func (e fileExistsError) Error() string {
	return fmt.Sprintf("file exists (use --force): %s", e.path)
}

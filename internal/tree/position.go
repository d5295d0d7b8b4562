package tree

import (
	"fmt"
	"strings"
)

// Position places a node relative to a reference node.
type Position int

const (
	FirstChild Position = iota
	LastChild
	SiblingBefore
	SiblingAfter
)

func (p Position) String() string {
	switch p {
	case FirstChild:
		return "first"
	case LastChild:
		return "last"
	case SiblingBefore:
		return "before"
	case SiblingAfter:
		return "after"
	default:
		return fmt.Sprintf("position(%d)", int(p))
	}
}

// IsSibling reports whether p places a node next to the reference rather than under it.
func (p Position) IsSibling() bool {
	return p == SiblingBefore || p == SiblingAfter
}

func (p Position) valid() bool {
	return p >= FirstChild && p <= SiblingAfter
}

// ParsePosition accepts the String form plus a few long aliases.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "first-child", "firstchild":
		return FirstChild, nil
	case "last", "last-child", "lastchild", "":
		return LastChild, nil
	case "before", "sibling-before":
		return SiblingBefore, nil
	case "after", "sibling-after":
		return SiblingAfter, nil
	default:
		return 0, fmt.Errorf("%w: %q (want first|last|before|after)", ErrInvalidPosition, s)
	}
}

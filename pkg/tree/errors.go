package tree

import (
	"errors"
	"fmt"
)

// ErrMissingType is returned when an argument node is created without a type.
var ErrMissingType = errors.New("argument node requires a type")

// ErrRootChild is returned when a root node is added as a child.
var ErrRootChild = errors.New("root node cannot be a child")

// DuplicateNameError is returned when a child name collides with an existing sibling.
type DuplicateNameError struct {
	Parent string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("duplicate command %q", e.Name)
	}
	return fmt.Sprintf("duplicate child %q under %q", e.Name, e.Parent)
}

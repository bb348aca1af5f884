package mapper

import "fmt"

// UnsupportedTypeError is returned when an argument type has no foreign equivalent.
type UnsupportedTypeError struct {
	Path string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("argument %q: type %s cannot be mapped", e.Path, e.Type)
}

// RootNotMappableError is returned when a root is mapped directly or is the target of a redirect.
type RootNotMappableError struct {
	Path string
}

func (e *RootNotMappableError) Error() string {
	if e.Path == "" {
		return "root node cannot be mapped"
	}
	return fmt.Sprintf("%q redirects to the root, which cannot be mapped", e.Path)
}

// DanglingRedirectError is returned when a redirect target is never mapped during a pass.
type DanglingRedirectError struct {
	Path   string
	Target string
}

func (e *DanglingRedirectError) Error() string {
	return fmt.Sprintf("%q redirects to %q, which is not part of the mapped tree", e.Path, e.Target)
}

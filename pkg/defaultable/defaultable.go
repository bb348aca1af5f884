// Package defaultable reads arguments from a parsed context with defaults for optional ones.
//
// An adapter is scoped to one request. It is not safe for concurrent use.
package defaultable

import (
	"github.com/aretw0/graft/pkg/dispatch"
)

// Context wraps a parsed context.
type Context[S any] struct {
	ctx     *dispatch.Context[S]
	present map[string]struct{}
}

// Wrap adapts ctx.
func Wrap[S any](ctx *dispatch.Context[S]) *Context[S] {
	return &Context[S]{ctx: ctx}
}

// Unwrap returns the underlying context.
func (c *Context[S]) Unwrap() *dispatch.Context[S] { return c.ctx }

// Source returns the source the context was parsed for.
func (c *Context[S]) Source() S { return c.ctx.Source() }

// Supplied reports whether the user supplied the named argument and it parsed.
func (c *Context[S]) Supplied(name string) bool {
	if c.present == nil {
		names := c.ctx.ArgumentNames()
		c.present = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.present[n] = struct{}{}
		}
	}
	_, ok := c.present[name]
	return ok
}

// Required reads an argument that must be present.
func Required[V, S any](c *Context[S], name string) (V, error) {
	return dispatch.Get[V](c.ctx, name)
}

// Optional reads an argument, returning def when it was never supplied.
// An argument supplied but not parsable returns its parse error.
func Optional[V, S any](c *Context[S], name string, def V) (V, error) {
	v, ok, err := Lookup[V](c, name)
	if err != nil {
		return v, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Lookup reads an argument, reporting whether it was supplied.
func Lookup[V, S any](c *Context[S], name string) (V, bool, error) {
	var zero V
	if !c.Supplied(name) {
		if err := c.ctx.ArgumentError(name); err != nil {
			return zero, false, err
		}
		return zero, false, nil
	}
	v, err := dispatch.Get[V](c.ctx, name)
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}

// Package types provides argument type descriptors for command trees.
//
// A Type turns raw input into a typed value through a Reader and offers example strings.
// Built-in primitives (bool, int, float and the three string kinds) share one wire representation
// across every execution domain, so a tree mapped from one domain to another passes them through
// unchanged. Any other type must say how it maps by implementing Mappable:
//
//	position := types.Custom("position", parsePosition,
//	    types.WithExamples("0 0 0", "~ ~ ~"),
//	    types.WithSuggest(suggestPosition),
//	    types.WithMapped(types.Greedy()),
//	)
//
// Types can also be resolved from their textual names, which is how declarative definitions
// refer to them:
//
//	t, err := types.ParseType("int(0,64)")
//
// A type that can propose completions implements Suggester. It receives the arguments parsed so
// far through the Arguments view, which every execution context satisfies.
package types

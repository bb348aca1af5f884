package tree

import "github.com/aretw0/graft/pkg/suggestion"

// SuggestionProvider supplies completions for an argument node.
type SuggestionProvider[S any] interface {
	Suggestions(ctx Context[S], b *suggestion.Builder) (*suggestion.Suggestions, error)
}

// SuggestionFunc adapts a function to SuggestionProvider.
type SuggestionFunc[S any] func(ctx Context[S], b *suggestion.Builder) (*suggestion.Suggestions, error)

func (f SuggestionFunc[S]) Suggestions(ctx Context[S], b *suggestion.Builder) (*suggestion.Suggestions, error) {
	return f(ctx, b)
}

// Keyed is implemented by providers that a host implements natively under a well-known key.
type Keyed interface {
	SharedKey() string
}

// Shared is a provider identified by a well-known key. Within its own domain it answers
// through Fallback; a mapper may replace it with the native provider registered for Key.
type Shared[S any] struct {
	Key      string
	Fallback SuggestionProvider[S]
}

// NewShared returns a keyed provider.
func NewShared[S any](key string, fallback SuggestionProvider[S]) *Shared[S] {
	return &Shared[S]{Key: key, Fallback: fallback}
}

func (s *Shared[S]) SharedKey() string { return s.Key }

func (s *Shared[S]) Suggestions(ctx Context[S], b *suggestion.Builder) (*suggestion.Suggestions, error) {
	if s.Fallback == nil {
		return b.Build(), nil
	}
	return s.Fallback.Suggestions(ctx, b)
}

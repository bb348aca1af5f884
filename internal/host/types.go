package host

import (
	"time"

	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/types"
)

var durationUnits = []string{"ms", "s", "m", "h"}

// World parses the name of a known world and suggests the known ones.
// It maps to a plain word on the foreign side.
func World(dir *Directory) types.Type {
	return types.Custom("world",
		func(r *types.Reader) (any, error) {
			start := r.Cursor()
			name := r.ReadUnquotedString()
			if !dir.HasWorld(name) {
				r.SetCursor(start)
				return nil, types.Errorf(r, "unknown world '%s'", name)
			}
			return name, nil
		},
		types.WithExamples("overworld", "nether"),
		types.WithSuggest(func(_ types.Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error) {
			return b.SuggestMatching(dir.Worlds()...).Build(), nil
		}),
		types.WithMapped(types.Word()),
	)
}

// Duration parses values such as "90s" or "1h30m". Once digits are typed it suggests units.
func Duration() types.Type {
	return types.Custom("duration",
		func(r *types.Reader) (any, error) {
			start := r.Cursor()
			raw := r.ReadUnquotedString()
			d, err := time.ParseDuration(raw)
			if err != nil {
				r.SetCursor(start)
				return nil, types.Errorf(r, "invalid duration '%s'", raw)
			}
			return d, nil
		},
		types.WithExamples("30s", "5m", "1h"),
		types.WithSuggest(func(_ types.Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error) {
			typed := b.Remaining()
			if typed == "" || typed[len(typed)-1] < '0' || typed[len(typed)-1] > '9' {
				return b.Build(), nil
			}
			for _, unit := range durationUnits {
				b.Suggest(typed + unit)
			}
			return b.Build(), nil
		}),
		types.WithMapped(types.Word()),
	)
}

// Types returns the custom types definition files may name.
func Types(dir *Directory) map[string]types.Type {
	return map[string]types.Type{
		"world":    World(dir),
		"duration": Duration(),
	}
}

package host

import (
	"strings"

	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/tree"
)

// Shared provider keys.
const (
	KeyPlayers = "players"
	KeyWorlds  = "worlds"
)

// Providers returns the origin suggestion providers definition files may name.
// Players and worlds are shared, so the foreign side answers them natively.
func Providers(dir *Directory) map[string]tree.SuggestionProvider[Sender] {
	return map[string]tree.SuggestionProvider[Sender]{
		KeyPlayers: tree.NewShared[Sender](KeyPlayers, players[Sender](dir)),
		KeyWorlds:  tree.NewShared[Sender](KeyWorlds, worlds[Sender](dir)),
		"self": tree.SuggestionFunc[Sender](func(ctx tree.Context[Sender], b *suggestion.Builder) (*suggestion.Suggestions, error) {
			return b.SuggestMatching(ctx.Source().Name).Build(), nil
		}),
	}
}

// Native returns the foreign providers registered for the shared keys.
func Native(dir *Directory) map[string]tree.SuggestionProvider[Listener] {
	return map[string]tree.SuggestionProvider[Listener]{
		KeyPlayers: players[Listener](dir),
		KeyWorlds:  worlds[Listener](dir),
	}
}

func players[S any](dir *Directory) tree.SuggestionProvider[S] {
	return tree.SuggestionFunc[S](func(_ tree.Context[S], b *suggestion.Builder) (*suggestion.Suggestions, error) {
		for _, p := range dir.Players() {
			if strings.HasPrefix(strings.ToLower(p), b.RemainingLower()) {
				b.SuggestTooltip(p, "online player")
			}
		}
		return b.Build(), nil
	})
}

func worlds[S any](dir *Directory) tree.SuggestionProvider[S] {
	return tree.SuggestionFunc[S](func(_ tree.Context[S], b *suggestion.Builder) (*suggestion.Suggestions, error) {
		return b.SuggestMatching(dir.Worlds()...).Build(), nil
	})
}

package host

import (
	"io"

	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/dsl"
	"github.com/aretw0/graft/pkg/types"
)

// Loader returns the built-in demo command set.
func Loader(dir *Directory, out io.Writer) *memory.Loader[Sender] {
	actions := Actions(out)
	providers := Providers(dir)

	return memory.NewLoader(
		dsl.Literal[Sender]("say").
			Describe("Broadcast a message").
			Then(dsl.Argument[Sender]("message", types.Greedy()).Executes(actions["say"])),
		dsl.Literal[Sender]("go").
			Describe("Shortcut for teleport").
			RedirectTo("teleport"),
		dsl.Literal[Sender]("teleport").
			Describe("Move a player to another world").
			Aliases("tp").
			Requires(Permission("teleport")).
			Then(
				dsl.Argument[Sender]("world", World(dir)).
					Executes(actions["teleport"]).
					Then(dsl.Argument[Sender]("player", types.Word()).
						Suggests(providers[KeyPlayers]).
						Executes(actions["teleport"])),
			),
		dsl.Literal[Sender]("wait").
			Describe("Pause for a while").
			Executes(actions["wait"]).
			Then(dsl.Argument[Sender]("duration", Duration()).Executes(actions["wait"])),
		dsl.Literal[Sender]("gamemode").
			Requires(Permission("gamemode")).
			Then(
				dsl.Literal[Sender]("creative").Executes(actions["noop"]),
				dsl.Literal[Sender]("survival").Executes(actions["noop"]),
			),
	)
}

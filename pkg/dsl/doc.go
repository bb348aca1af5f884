/*
Package dsl provides a fluent builder for command trees.

It lets hosts declare commands in Go instead of wiring tree.Node values by hand:

	root, err := dsl.Tree(
		dsl.Literal[Sender]("teleport").
			Aliases("tp").
			Requires(isOperator).
			Then(
				dsl.Argument[Sender]("target", types.Word()).
					Suggests(players).
					Executes(teleport),
			),
		dsl.Literal[Sender]("run").RedirectTo(""),
	)

Redirects can point at an already built node (Redirect) or at a space-separated path from the root
(RedirectTo) that is resolved once every command has been attached. The empty path names the root.
*/
package dsl

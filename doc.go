/*
Package graft mirrors command trees between execution domains.

A command tree is declared once for the domain that runs commands (the origin) and grafted onto a
domain that only types them (the foreign side): a remote console, a chat client, an agent. The
foreign copy keeps the same literals, arguments, permissions and redirects, so completions and usage
seen remotely match what the origin would accept.

# Concept

A tree is built from three node kinds: the root, literals and typed arguments. Each node may carry a
requirement (a permission check on the source), a command and a redirect to another node. The
mapper walks the origin tree and builds the foreign tree, translating argument types that have no
foreign equivalent and choosing, per argument, how suggestions are produced:

  - Shared: a provider registered for both domains answers directly.
  - Reparse: the foreign input is parsed again with the origin tree and the origin computes the
    completions.
  - None: no completions are offered.

The foreign nodes are installed in a registry, which publishes each command under a qualified name
("namespace:name") and a bare alias. The registry root is replaced atomically, so readers never
see a partially registered tree.

# Key Features

  - Generic over the source types of both domains.
  - Redirects and permission checks survive the mapping.
  - Hot reload: a new origin tree is mapped before anything is unregistered.
  - Pluggable platforms: in-memory, or Redis for sharing commands between processes.
  - Definition files in YAML, JSON(C) or TOML (see pkg/adapters/file).

# Usage

	origin, err := dsl.Tree(
		dsl.Literal[Sender]("give").Then(
			dsl.Argument[Sender]("item", itemType).Executes(give),
		),
	)
	if err != nil {
		log.Fatal(err)
	}

	s, err := graft.New(origin, memory.NewPlatform[Listener](), toSender,
		graft.WithNamespace("shop"),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Synchronize(); err != nil {
		log.Fatal(err)
	}

	for _, sg := range s.Suggest("give ", listener).List {
		fmt.Println(sg.Text)
	}

# Adapters

The cmd/graft binary serves the synchronized commands over HTTP (pkg/adapters/http) and the Model
Context Protocol (pkg/adapters/mcp), and can watch a definition file for changes.
*/
package graft

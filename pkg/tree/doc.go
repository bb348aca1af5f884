/*
Package tree contains the command node model shared by every execution domain.

A command tree is a strict tree of nodes owned top-down by their parents, plus an optional
redirect slot on every non-root node. A redirect is a weak reference that aliases the continuation
of one node to another existing node; it is the only edge allowed outside the ownership hierarchy
and Walk never follows it.

# Key Entities

  - Node: Root, Literal or Argument, parameterized by the execution-source type S.
  - Requirement: predicate over the source deciding whether a node is usable.
  - Context: the view of a parsed command that commands and providers receive.
  - SuggestionProvider: custom completions for an argument; Shared marks providers the host
    implements natively in every domain.
*/
package tree

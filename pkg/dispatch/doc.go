/*
Package dispatch implements the generic command dispatcher used by every execution domain.

A Dispatcher owns a root node and offers three read-only operations over it:

  - Parse reads raw input into ParseResults, following redirects and requirements.
  - CompletionSuggestions proposes completions at a cursor position.
  - Usage lists the command lines reachable from a node.

A Dispatcher never mutates its tree, so the same instance may parse concurrently for many sources.
*/
package dispatch

/*
Package suggestion defines the autocomplete wire format shared by every execution domain.

Suggestions are plain text completions with an optional tooltip, each anchored to a byte range
of the input. Nothing in this package depends on the source type of a domain, which is what lets
a suggestion computed by one dispatcher be returned unchanged by another.
*/
package suggestion

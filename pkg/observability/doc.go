/*
Package observability provides Prometheus metrics for tree mapping and suggestion resolution.

A nil *Metrics is valid and records nothing, so libraries can take metrics as an optional dependency.
*/
package observability

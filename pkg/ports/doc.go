/*
Package ports defines the driven ports (interfaces) graft talks to.

These interfaces decouple mapping and registration from the environments that host the trees,
allowing the same synchronizer to publish into memory, Redis or any host platform.

# Key Interfaces

  - Platform: installs top-level commands into the foreign host.
  - DefinitionLoader: builds an origin tree from an external source (e.g. definition files).
  - Watchable: notifies when the source of a loader changes.
*/
package ports

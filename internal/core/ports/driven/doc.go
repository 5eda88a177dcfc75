// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogTransport: Paginated access to catalog collections
//   - MediaStore: Downloads media into the managed file store
//   - MediaCache: Key/value cache of resolved media
//   - NodeSink: Receives finalised nodes
//
// # Optional Interfaces
//
//   - NodeStore: Read access to emitted nodes, used for hierarchy lookups
//   - FileRegistry: Bookkeeping for files held by the media store
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven

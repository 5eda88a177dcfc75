// Package driving defines the interfaces that drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI calls these interfaces; services implement them.
//
//   - Pipeline: Runs the catalog sourcing pipeline
//   - NodeService: Browses emitted nodes and their hierarchy
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving

// Package domain defines the core catalog entities for wcgraph.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: An item as decoded from the catalog API
//   - Record: A catalog item being prepared for emission
//   - Node: The normalised, digested output unit
//   - MediaCacheEntry: A cached media download keyed by media identity
//   - SourceConfig: The catalog connection and pipeline settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

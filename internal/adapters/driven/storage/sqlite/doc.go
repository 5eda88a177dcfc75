// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements several store interfaces through a single database connection:
//
//   - NodeStore: emitted nodes, bodies compressed with zstd
//   - MediaCache: media key to downloaded file mapping
//   - FileRegistry: files held by the managed media store
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.wcgraph/data/wcgraph.db
package sqlite

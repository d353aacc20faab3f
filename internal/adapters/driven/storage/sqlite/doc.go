// Package sqlite provides a SQLite-backed driven.PropertyStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.kbbot/data/kbbot.db
//
// # Thread Safety
//
// All operations are thread-safe. A property is replaced by a single upsert,
// so readers see the previous value or the new one.
package sqlite

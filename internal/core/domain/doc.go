// Package domain defines the core business entities for kbbot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentEntry: One indexed document (id, title, link, snippet)
//   - TitleIndex: Normalized title to ordered document entries
//   - IndexPayload: The persisted unit written by a full rebuild
//   - QueryMappings: Exact-phrase query expansions
//
// It also holds the two pure functions every layer shares:
// NormalizeTitle (the single source of index and query keys) and
// Similarity (normalized edit-distance).
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

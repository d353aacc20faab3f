// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentStore: Hierarchical folder/document source (Drive, filesystem, GitHub)
//   - PropertyStore: Key-value persistence for the serialized index payload
//   - ConfigStore: Application configuration
//   - MappingStore: The query expansion table
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or services package
package driven

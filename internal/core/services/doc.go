// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The index builder walks a document store and produces a title index,
// the index store persists it through a property store, and the search
// service answers queries from the persisted payload.
package services

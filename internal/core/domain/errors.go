package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document or storage backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrConfiguration indicates a missing or placeholder setting that an
	// operation requires before it can start. It is the only error that
	// aborts an index rebuild.
	ErrConfiguration = errors.New("configuration error")

	// ErrStoreAccess indicates a folder or document could not be read from
	// the document store. The affected item is skipped.
	ErrStoreAccess = errors.New("document store access failed")

	// ErrPayloadCorrupt indicates the persisted index payload could not be
	// parsed. Readers treat it as "no index".
	ErrPayloadCorrupt = errors.New("index payload corrupt")

	// ErrNoIndex indicates no index payload has been persisted yet.
	ErrNoIndex = errors.New("no index built")
)

package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Services
// translate these into their own error vocabulary.
var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey indicates a write violated a unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnavailable indicates the document store is not connected.
	ErrUnavailable = errors.New("database not available")
)

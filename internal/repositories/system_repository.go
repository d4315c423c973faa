package repositories

import "context"

// SystemRepository interface for store-level introspection
type SystemRepository interface {
	// ListCollections returns the collection names of the database.
	ListCollections(ctx context.Context) ([]string, error)

	// DatabaseName returns the name of the connected database, empty
	// when the store is unavailable.
	DatabaseName() string
}

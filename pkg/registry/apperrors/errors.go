// Package apperrors defines the error kinds the artifact flow can surface.
// Each kind is a sentinel wrapped with context via fmt.Errorf("%w: ...: %w"),
// so callers can both match the kind with errors.Is and still reach the
// underlying cause.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the artifact is absent everywhere, including the external
	// museum API.
	ErrNotFound = errors.New("artifact not found")

	// ErrExternalFetch: the museum API failed for any reason other than a
	// missing resource, after local retries were exhausted.
	ErrExternalFetch = errors.New("external museum api fetch failed")

	// ErrConflict: a uniqueness violation on repository save. Distinguishable
	// from ErrPersistence so callers may treat it as "already exists".
	ErrConflict = errors.New("artifact already registered")

	// ErrPersistence: any other repository failure. The enclosing transaction
	// is rolled back.
	ErrPersistence = errors.New("artifact persistence failed")

	// ErrBrokerPublish: the admission event could not be published after the
	// artifact was durably committed.
	ErrBrokerPublish = errors.New("broker publish failed")

	// ErrCatalogPublish: the public catalog rejected the publication after the
	// artifact was durably committed.
	ErrCatalogPublish = errors.New("catalog publish failed")
)

// WrapWithID attaches the inventory id and the underlying cause to a kind.
func WrapWithID(kind error, inventoryID string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: artifact %s", kind, inventoryID)
	}
	return fmt.Errorf("%w: artifact %s: %w", kind, inventoryID, cause)
}

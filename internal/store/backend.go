// Package store owns the durable side of the app: the storage backends and
// the persistence controller that holds the in-memory dataset.
package store

import "errors"

var (
	// ErrNotFound means no document has been stored yet (first run). The
	// controller treats it as an empty dataset, not a failure.
	ErrNotFound = errors.New("no stored document")

	// ErrPermissionDenied means the chosen data directory cannot be used.
	ErrPermissionDenied = errors.New("directory access denied")

	// ErrCorruptDocument means stored data exists but cannot be decoded.
	// This is terminal for loading; it is never masked as an empty dataset.
	ErrCorruptDocument = errors.New("stored document is corrupt")

	// ErrNotReady rejects mutations while the controller is loading,
	// waiting for a storage decision, or failed.
	ErrNotReady = errors.New("storage is not ready")
)

// Backend reads and writes one opaque JSON document. Save always replaces
// the full contents; there are no partial or incremental writes.
type Backend interface {
	Name() string
	Load() ([]byte, error)
	Save(data []byte) error
}

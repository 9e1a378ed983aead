// Package storage defines the key-value persistence abstraction.
//
// Each key holds one JSON document, mirroring the browser local-storage
// layout the data originated from.
package storage

// Provider is the interface for raw key-value operations.
type Provider interface {
	// Get returns the raw bytes stored under key, or apperr.ErrNotFound.
	Get(key string) ([]byte, error)
	// Put atomically writes value under key.
	Put(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys returns every stored key.
	Keys() ([]string, error)
}

// Package accountstore provides the keyed byte-blob store the replay
// engine mutates. Two backings exist behind one interface: an in-memory
// map for normal operation and a pebble-backed store for memory-bounded
// replay over large account sets.
package accountstore

import "errors"

// ErrNotFound is returned by Get when the key has no live entry.
var ErrNotFound = errors.New("accountstore: not found")

// Store maps account addresses to opaque account data.
//
// Upsert and Delete are idempotent at the final-value level. Traverse
// visits every live entry exactly once in lexicographic key order; the
// store must not be mutated while a traversal is running.
type Store interface {
	// Get returns the data for the address, or ErrNotFound.
	Get(address string) ([]byte, error)
	// Upsert inserts or replaces the data for the address.
	Upsert(address string, data []byte) error
	// Delete removes the address. Deleting an absent address is a no-op.
	Delete(address string) error
	// Traverse calls fn for every live entry in ascending address order.
	// A non-nil error from fn stops the traversal and is returned.
	Traverse(fn func(address string, data []byte) error) error
	// Close releases backing resources.
	Close() error
}

// Package cache provides the answer cache used by the assistant.
//
// Repeated questions are common in demo sessions and the model call
// dominates query latency, so answers are cached by question text with
// a TTL. Implementations: an in-memory store for tests and short-lived
// processes, and a Badger-backed store for persistence across restarts.
package cache

import "time"

// Store is a byte-value cache with per-entry TTL.
type Store interface {
	// Get returns the value for key. The bool reports whether the key
	// was present and unexpired.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key. ttl <= 0 means no expiry.
	Set(key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}

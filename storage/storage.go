// Package storage defines the persisted local-state contract of the session
// layer: a durable string key-value store holding the five session keys, so a
// process restart can rehydrate the session.
//
// Readers must tolerate every key being absent (first visit) and malformed
// JSON under KeyUser (treated as null by the caller). Backends live in the
// memory, rediskv, and bolt subpackages.
package storage

import "context"

// Persisted key names. The values are strings; KeyUser holds JSON.
const (
	KeyIsLoggedIn  = "isLoggedIn"
	KeyUserType    = "userType"
	KeyAccessToken = "accessToken"
	KeyUser        = "user"
	KeyUserPhone   = "userPhone"
)

// SessionKeys returns all persisted key names, for bulk clears.
func SessionKeys() []string {
	return []string{KeyIsLoggedIn, KeyUserType, KeyAccessToken, KeyUser, KeyUserPhone}
}

// Store is a durable string key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// absence is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

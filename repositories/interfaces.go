package repositories

import (
	"context"
	"encoding/json"
)

// Storage keys owned by the core services. Each key holds one JSON
// document; services are the sole writers of their own keys.
const (
	KeyApprovedCases = "approved_cases"
	KeyRejectedCases = "rejected_cases"
	KeySettings      = "settings"
	KeySearchHistory = "search_history"
	KeyFavorites     = "favorite_functions"
)

// KeyValueStore is the persistence capability the core depends on.
// Reads and writes operate on whole JSON documents; there is no partial
// update, so concurrent read-modify-write sequences on the same key can
// race. That matches the original storage contract and is accepted.
type KeyValueStore interface {
	// Get returns the stored values for the requested keys. Keys with
	// no stored value are absent from the result map.
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)

	// Set stores all given key/value pairs
	Set(ctx context.Context, values map[string]json.RawMessage) error

	// Clear removes all stored values
	Clear(ctx context.Context) error
}

// GetJSON reads one key and unmarshals it into dest. Returns false when
// the key has no stored value; dest is left untouched in that case.
func GetJSON(ctx context.Context, store KeyValueStore, key string, dest interface{}) (bool, error) {
	values, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	raw, ok := values[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals value and stores it under key
func SetJSON(ctx context.Context, store KeyValueStore, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, map[string]json.RawMessage{key: raw})
}

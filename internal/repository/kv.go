package repository

import "context"

// Logical storage keys for the persisted collections.
const (
	KeyNotes         = "notes"
	KeySavedResearch = "saved_research"
	KeySearchHistory = "search_history"
)

// KV is the key-value store behind the persisted collections. Each key maps
// to one JSON-encoded array. Absence of a key is not an error: Get returns
// (nil, nil). Concurrent read-modify-write from separate processes is last
// write wins; no backend attempts to resolve it.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

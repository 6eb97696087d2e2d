package ports

import "context"

// Storage keys. Values are JSON documents written whole.
const (
	KeySessionIdentity   = "session-identity"
	KeyPostCollection    = "post-collection"
	KeyIdentityDirectory = "identity-directory"
)

// KeyValueStore is the durable string-keyed storage behind both stores.
type KeyValueStore interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}

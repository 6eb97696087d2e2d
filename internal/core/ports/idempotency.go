package ports

import "context"

// IdempotencyStore remembers which post a client-supplied key created, so a
// retried create returns the original post instead of a duplicate.
type IdempotencyStore interface {
	Lookup(ctx context.Context, identityID, key string) (postID string, ok bool, err error)
	Remember(ctx context.Context, identityID, key, postID string) error
}

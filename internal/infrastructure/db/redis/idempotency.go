package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyKeys remembers which post an Idempotency-Key created.
// Key format: <prefix>idem:<identity_id>:<key>
type IdempotencyKeys struct {
	client *redis.Client
	prefix string
}

func NewIdempotencyKeys(client *redis.Client, prefix string) *IdempotencyKeys {
	return &IdempotencyKeys{client: client, prefix: prefix}
}

// Lookup returns the post id recorded for key, if any.
func (k *IdempotencyKeys) Lookup(ctx context.Context, identityID, key string) (string, bool, error) {
	postID, err := k.client.Get(ctx, k.key(identityID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return postID, true, nil
}

// Remember records postID for key (expires after idempotencyTTL). An
// existing record is kept.
func (k *IdempotencyKeys) Remember(ctx context.Context, identityID, key, postID string) error {
	if err := k.client.SetNX(ctx, k.key(identityID, key), postID, idempotencyTTL).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (k *IdempotencyKeys) key(identityID, key string) string {
	return fmt.Sprintf("%sidem:%s:%s", k.prefix, identityID, key)
}

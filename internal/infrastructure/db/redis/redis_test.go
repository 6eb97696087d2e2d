package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/blog-system/internal/core/ports"
)

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	return miniredis.RunT(t)
}

func TestConnect(t *testing.T) {
	mr := newMiniredis(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	_, err = Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	mr := newMiniredis(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	var kv ports.KeyValueStore = NewStore(client, "blog:")

	_, ok, err := kv.Get(ctx, ports.KeySessionIdentity)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, ports.KeySessionIdentity, `{"id":"1"}`))
	got, ok, err := kv.Get(ctx, ports.KeySessionIdentity)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, got)

	raw, err := mr.Get("blog:" + ports.KeySessionIdentity)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, raw)

	require.NoError(t, kv.Delete(ctx, ports.KeySessionIdentity))
	require.NoError(t, kv.Delete(ctx, ports.KeySessionIdentity))
	_, ok, err = kv.Get(ctx, ports.KeySessionIdentity)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, NewStore(client, "blog:").Ping(ctx))
}

func TestIdempotencyKeys(t *testing.T) {
	mr := newMiniredis(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	keys := NewIdempotencyKeys(client, "blog:")

	_, ok, err := keys.Lookup(ctx, "1", "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, keys.Remember(ctx, "1", "abc", "1700000000000"))
	require.NoError(t, keys.Remember(ctx, "1", "abc", "1700000000999"))

	postID, ok, err := keys.Lookup(ctx, "1", "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1700000000000", postID, "first record wins")

	_, ok, err = keys.Lookup(ctx, "2", "abc")
	require.NoError(t, err)
	assert.False(t, ok, "keys are scoped per identity")

	mr.FastForward(idempotencyTTL + time.Second)
	_, ok, err = keys.Lookup(ctx, "1", "abc")
	require.NoError(t, err)
	assert.False(t, ok, "records expire")
}

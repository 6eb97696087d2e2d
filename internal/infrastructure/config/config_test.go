package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 6, cfg.PageSize)
	assert.Equal(t, 3, cfg.FeaturedCount)
	assert.True(t, cfg.SeedSamplePosts)
	assert.True(t, cfg.RenderSanitize)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "blog:", cfg.Redis.KeyPrefix)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_BACKEND":   "redis",
		"PAGE_SIZE":         "10",
		"SEED_SAMPLE_POSTS": "false",
		"ENV":               "production",
		"TOKEN_TTL":         "90m",
	}))
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, 10, cfg.PageSize)
	assert.False(t, cfg.SeedSamplePosts)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
}

func TestLoadWith_Prefix(t *testing.T) {
	l := envconfig.PrefixLookuper("BLOGCTL_", envconfig.MapLookuper(map[string]string{
		"BLOGCTL_STORAGE_DIR": "/tmp/blogctl",
		"STORAGE_DIR":         "/ignored",
	}))

	cfg, err := LoadWith(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/blogctl", cfg.Storage.Dir)
}

func TestLoadWith_Invalid(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"STORAGE_BACKEND": "s3"}))
	assert.Error(t, err)

	_, err = LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"PAGE_SIZE": "0"}))
	assert.Error(t, err)
}

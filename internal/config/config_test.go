package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "catalog")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_AUTO_MIGRATE", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "catalog", cfg.DBName)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 60, cfg.AccessTTLMin)
	assert.True(t, cfg.IsDev())
}

func TestLoadMissing(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestLoadBadTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "ACCESS_TOKEN_TTL_MIN")
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "bogus")
	t.Setenv("CACHE_ENABLED", "off")

	cfg := LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "route_query", cfg.KeyStrategy)
	assert.Equal(t, "cache", cfg.Prefix)
	assert.Equal(t, 1<<20, cfg.MaxBodyBytes)
}

func TestCacheConfigNormalize(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"empty", "", "cache"},
		{"separators only", ":::", "cache"},
		{"trailing separator", "catalog:", "catalog"},
		{"glob", "ca*che", "cache"},
		{"kept", "movies", "movies"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := CacheConfig{Prefix: tc.prefix}.Normalize()
			assert.Equal(t, tc.want, cfg.Prefix)
		})
	}

	cfg := CacheConfig{Prefix: "x", TTL: -time.Second, KeyStrategy: "Method_Route", MaxBodyBytes: -1}.Normalize()
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "method_route", cfg.KeyStrategy)
	assert.True(t, cfg.Methods["GET"])
	assert.Zero(t, cfg.MaxBodyBytes)
	assert.Equal(t, "route_query", CacheConfig{KeyStrategy: "by_user"}.Normalize().KeyStrategy)
}

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "3")
	opts := RedisOptions()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Nil(t, opts.TLSConfig)

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	assert.Equal(t, "redis:6379", RedisOptions().Addr)
}

func TestLoadBrokerConfig(t *testing.T) {
	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")
	t.Setenv("BREAKER_MAX_FAILURES", "0")

	cfg := LoadBrokerConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.URL)
	assert.Equal(t, 1, cfg.MaxFailures)
	assert.Equal(t, "logs", cfg.AuditDir)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":5001", cfg.Addr)
	assert.Equal(t, "/projects/neon-snake", cfg.Prefix)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, "addr is required"},
		{"empty templates", func(c *Config) { c.TemplateDir = "" }, "template dir is required"},
		{"empty static", func(c *Config) { c.StaticDir = "" }, "static dir is required"},
		{"relative prefix", func(c *Config) { c.Prefix = "projects" }, "must start with /"},
		{"trailing slash", func(c *Config) { c.Prefix = "/projects/" }, "must not end with /"},
		{"relative origin", func(c *Config) { c.Origin = "snake.dev" }, "must be an absolute http(s) URL"},
		{"ftp origin", func(c *Config) { c.Origin = "ftp://snake.dev" }, "must be an absolute http(s) URL"},
		{"origin with path", func(c *Config) { c.Origin = "https://snake.dev/" }, "must not have a path"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"bad backend", func(c *Config) { c.Cache.Backend = "memcached" }, "unknown cache backend"},
		{"redis without addr", func(c *Config) {
			c.Cache.Backend = CacheRedis
			c.Cache.RedisAddr = ""
		}, "redis cache needs an address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_EmptyPrefixAllowed(t *testing.T) {
	cfg := Default()
	cfg.Prefix = ""
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger_Level(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	defer logger.Sync()

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg.LogLevel = "nope"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}

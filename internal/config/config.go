package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StaticPath is where the static directory is mounted. The page template
// references its assets here, so it does not move with Prefix.
const StaticPath = "/projects/neon-snake/static/"

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// CacheConfig controls the optional render cache
type CacheConfig struct {
	Backend   string
	RedisAddr string
	TTL       time.Duration
}

// Config holds everything the server needs at startup.
// It is built once and passed down; nothing reads it from globals.
type Config struct {
	Addr        string
	TemplateDir string
	StaticDir   string
	Prefix      string
	// Origin is the public scheme and host used in robots.txt and sitemap.xml
	Origin      string

	LogLevel    string
	Development bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	Cache CacheConfig
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Addr:            ":5001",
		TemplateDir:     "templates",
		StaticDir:       "static",
		Prefix:          "/projects/neon-snake",
		Origin:          "http://localhost:5001",
		LogLevel:        "info",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Cache: CacheConfig{
			Backend:   CacheNone,
			RedisAddr: "localhost:6379",
			TTL:       5 * time.Minute,
		},
	}
}

// Validate checks the config for values the server cannot start with
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.TemplateDir == "" {
		errs = append(errs, errors.New("template dir is required"))
	}
	if c.StaticDir == "" {
		errs = append(errs, errors.New("static dir is required"))
	}
	if c.Prefix != "" {
		if !strings.HasPrefix(c.Prefix, "/") {
			errs = append(errs, fmt.Errorf("prefix %q must start with /", c.Prefix))
		}
		if strings.HasSuffix(c.Prefix, "/") {
			errs = append(errs, fmt.Errorf("prefix %q must not end with /", c.Prefix))
		}
	}
	if err := validateOrigin(c.Origin); err != nil {
		errs = append(errs, err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("redis cache needs an address"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}

	return errors.Join(errs...)
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("origin %q must be an absolute http(s) URL", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin %q must not have a path", origin)
	}
	return nil
}

// NewLogger builds the zap logger for the configured level and mode
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	var zc zap.Config
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

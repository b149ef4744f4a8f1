// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// validLogLevels lists the accepted CORPSITE_LOG_LEVEL values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"CORPSITE_DB_PATH" envDefault:"./data/corpsite.db"`
	ServerHost string `env:"CORPSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CORPSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"CORPSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"CORPSITE_LOG_LEVEL" envDefault:"info"`

	// Content rendering
	AssetOrigin     string   `env:"CORPSITE_ASSET_ORIGIN,required"`                            // Origin uploaded files are served from
	UploadPrefix    string   `env:"CORPSITE_UPLOAD_PREFIX" envDefault:"/uploads/"`             // Path prefix of upload-relative URLs
	DefaultLanguage string   `env:"CORPSITE_DEFAULT_LANGUAGE" envDefault:"en"`                 // Language used when a request names none
	Languages       []string `env:"CORPSITE_LANGUAGES" envDefault:"en,tr,de" envSeparator:","` // Languages offered to Accept-Language matching

	// Cache configuration
	RedisURL     string `env:"CORPSITE_REDIS_URL"`                           // Optional Redis URL for distributed caching
	CachePrefix  string `env:"CORPSITE_CACHE_PREFIX" envDefault:"corpsite:"` // Redis key prefix
	CacheTTL     int    `env:"CORPSITE_CACHE_TTL" envDefault:"3600"`         // Default cache TTL in seconds
	CacheMaxSize int    `env:"CORPSITE_CACHE_MAX_SIZE" envDefault:"10000"`   // Max memory cache entries

	// API rate limiting per client IP
	APIRateLimit float64 `env:"CORPSITE_API_RATE_LIMIT" envDefault:"10"` // Requests per second
	APIRateBurst int     `env:"CORPSITE_API_RATE_BURST" envDefault:"20"` // Burst size

	// Background jobs (cron syntax, empty disables)
	PayloadMigrationSchedule string `env:"CORPSITE_PAYLOAD_MIGRATION_SCHEDULE" envDefault:"@hourly"`
	CacheStatsSchedule       string `env:"CORPSITE_CACHE_STATS_SCHEDULE" envDefault:"@every 15m"`

	// Seeding configuration
	DoSeed bool `env:"CORPSITE_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheDuration returns CacheTTL as a duration.
func (c Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.AssetOrigin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CORPSITE_ASSET_ORIGIN must be an absolute http(s) URL, got %q", c.AssetOrigin)
	}

	if !strings.HasPrefix(c.UploadPrefix, "/") || !strings.HasSuffix(c.UploadPrefix, "/") {
		return fmt.Errorf("CORPSITE_UPLOAD_PREFIX must start and end with '/', got %q", c.UploadPrefix)
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("CORPSITE_LOG_LEVEL must be one of %s, got %q",
			strings.Join(validLogLevels, ", "), c.LogLevel)
	}

	if c.DefaultLanguage == "" {
		return fmt.Errorf("CORPSITE_DEFAULT_LANGUAGE must not be empty")
	}

	if c.CacheTTL < 0 || c.CacheMaxSize < 0 {
		return fmt.Errorf("cache TTL and size must not be negative")
	}

	if c.APIRateLimit <= 0 || c.APIRateBurst < 1 {
		return fmt.Errorf("CORPSITE_API_RATE_LIMIT must be positive and CORPSITE_API_RATE_BURST at least 1")
	}

	return nil
}

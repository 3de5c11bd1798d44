package config

import (
	"strconv"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is available, caching is
// disabled entirely. Only GET responses are ever cached.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}

// RateLimitConfig defines settings for the fixed-window rate limiter
// applied to mutating routes. Requests is the number of requests one
// client IP may make per Window.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
	Prefix   string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults allow 60 writes a minute per client.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:  getenv("RATE_ENABLED", "true") == "true",
		Requests: atoi(getenv("RATE_REQUESTS", "60")),
		Window:   parseDur(getenv("RATE_WINDOW", "1m")),
		Prefix:   getenv("RATE_PREFIX", "rate"),
	}
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}

package config

import (
    "os"
    "strconv"
    "time"
)

// CacheConfig defines settings for the response cache middleware.  Listing
// and report endpoints are read-heavy relative to writes, so their GET
// responses are cached in Redis for a short TTL.  When Enabled is false or
// no Redis client is configured, caching is disabled.
type CacheConfig struct {
    Enabled bool          // master switch for the cache middleware
    TTL     time.Duration // lifetime of cached responses
    Prefix  string        // key namespace in Redis
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: getenv("CACHE_ENABLED", "true") == "true",
        TTL:     parseDur(getenv("CACHE_TTL", "30s")),
        Prefix:  getenv("CACHE_PREFIX", "hostel:cache"),
    }
}

// getenv returns the environment value for key or def when unset/empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func atoi(s string) int {
    i, _ := strconv.Atoi(s)
    return i
}

// parseDur parses a duration string, falling back to one second on error.
func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return time.Second
    }
    return d
}

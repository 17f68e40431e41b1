package config

import "time"

// RateLimitConfig controls the fixed-window request limiter.  Each client IP
// may issue at most Limit requests per Window against a given route before
// receiving 429 responses.
type RateLimitConfig struct {
    Enabled bool          // master switch for the limiter middleware
    Limit   int           // maximum requests per window
    Window  time.Duration // window length
    Prefix  string        // key namespace in Redis
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  Defaults allow 60 requests per minute per IP and route.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Limit:   atoi(getenv("RATE_LIMIT_MAX", "60")),
        Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
        Prefix:  getenv("RATE_LIMIT_PREFIX", "hostel:rl"),
    }
}

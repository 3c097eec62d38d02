package config

import "time"

// CacheConfig tunes the response cache for public GET endpoints.  The
// gift listing is read by every guest on every page load while writes
// are rare, so even a short TTL removes most of the read traffic.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads the response cache settings from the
// environment; helpers are shared with ratelimit.go.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}

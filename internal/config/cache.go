package config

import (
	"strings"
	"time"
)

// CacheConfig configures the Redis response cache in front of the catalog
// reads. Prefix namespaces every key, including the generation counter that
// Purge bumps after a movie is created.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // upper-cased HTTP methods served from cache
	TTL          time.Duration
	KeyStrategy  string // route, route_query, method_route or method_route_query
	Prefix       string
	MaxBodyBytes int // larger responses are passed through uncached; 0 means no cap
}

var cacheKeyStrategies = map[string]bool{
	"route": true, "route_query": true, "method_route": true, "method_route_query": true,
}

// LoadCacheConfig reads CACHE_ENABLED, CACHE_METHODS, CACHE_TTL,
// CACHE_KEY_STRATEGY, CACHE_PREFIX and CACHE_MAX_BODY_BYTES.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}.Normalize()
}

// Normalize replaces values the cache cannot work with by the defaults. The
// prefix is used verbatim in a SCAN pattern, so separators and glob
// characters are not accepted in it.
func (c CacheConfig) Normalize() CacheConfig {
	c.Prefix = strings.Trim(strings.TrimSpace(c.Prefix), ":")
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, "*?[]\\ ") {
		c.Prefix = "cache"
	}
	if len(c.Methods) == 0 {
		c.Methods = map[string]bool{"GET": true}
	}
	if c.TTL <= 0 {
		c.TTL = 30 * time.Second
	}
	c.KeyStrategy = strings.ToLower(strings.TrimSpace(c.KeyStrategy))
	if !cacheKeyStrategies[c.KeyStrategy] {
		c.KeyStrategy = "route_query"
	}
	if c.MaxBodyBytes < 0 {
		c.MaxBodyBytes = 0
	}
	return c
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			m[p] = true
		}
	}
	return m
}

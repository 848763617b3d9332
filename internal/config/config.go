package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Sub-systems with many knobs (cache, rate limit,
// broker) have their own loaders in this package.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	AutoMigrate  bool   // apply the catalog schema at startup
	JWTSecret    string // secret used to verify editor tokens; empty disables the write guard
	AccessTTLMin int    // editor token time-to-live in minutes
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development" || c.Env == "local"
}

// LoadDotEnv reads a .env file from the working directory when present.
// Variables already set in the process environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads configuration values from environment variables and returns a
// Config. Missing required variables and malformed numbers are reported as
// an error so callers can decide how to exit.
func Load() (Config, error) {
	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}
	cfg := Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      must("DB_HOST"),
		DBPort:      must("DB_PORT"),
		DBName:      must("DB_NAME"),
		AutoMigrate: envBool("DB_AUTO_MIGRATE", true),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env var: %v", missing)
	}
	ttl, err := optInt("ACCESS_TOKEN_TTL_MIN", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.AccessTTLMin = ttl
	return cfg, nil
}

// optInt is like envInt but reports malformed values instead of silently
// falling back to the default.
func optInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, s)
	}
	return n, nil
}

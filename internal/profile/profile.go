package profile

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Driver is the record store driver (mongo or memory)
	Driver string
	// DSN is the mongo connection string, e.g. mongodb://localhost:27017
	DSN string
	// Database is the mongo database name
	Database string
	// SourceURL is the base URL of the remote ingestion API
	SourceURL string
	// CacheTTLMillis is how long a cached read stays fresh (ttlMillis)
	CacheTTLMillis int
	// CacheCleanupMillis is the interval of the expired-entry sweep
	CacheCleanupMillis int
	// CacheRedisAddr enables the shared Redis cache backend when set
	CacheRedisAddr string
	// CacheRedisPassword is the password for the Redis backend
	CacheRedisPassword string
	// Version is the current version of server
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// CacheTTL returns the configured entry lifetime as a duration.
func (p *Profile) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLMillis) * time.Millisecond
}

// CacheCleanupInterval returns the sweep interval as a duration.
func (p *Profile) CacheCleanupInterval() time.Duration {
	return time.Duration(p.CacheCleanupMillis) * time.Millisecond
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from PLACEDEX_* environment variables.
// Values already set (e.g. by flags) win over the environment.
func (p *Profile) FromEnv() {
	if p.DSN == "" {
		p.DSN = getEnvOrDefault("PLACEDEX_DSN", "mongodb://localhost:27017")
	}
	if p.Database == "" {
		p.Database = getEnvOrDefault("PLACEDEX_DATABASE", "placedex")
	}
	if p.SourceURL == "" {
		p.SourceURL = getEnvOrDefault("PLACEDEX_SOURCE_URL", "https://jsonplaceholder.typicode.com")
	}
	if p.CacheRedisAddr == "" {
		p.CacheRedisAddr = os.Getenv("PLACEDEX_CACHE_REDIS_ADDR")
	}
	if p.CacheRedisPassword == "" {
		p.CacheRedisPassword = os.Getenv("PLACEDEX_CACHE_REDIS_PASSWORD")
	}
	if p.CacheTTLMillis == 0 {
		if v, err := strconv.Atoi(os.Getenv("PLACEDEX_CACHE_TTL_MS")); err == nil && v > 0 {
			p.CacheTTLMillis = v
		}
	}
	if p.CacheCleanupMillis == 0 {
		if v, err := strconv.Atoi(os.Getenv("PLACEDEX_CACHE_CLEANUP_MS")); err == nil && v > 0 {
			p.CacheCleanupMillis = v
		}
	}
}

// Validate normalizes the profile and rejects configurations the server
// cannot start with.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	// Demo mode runs fully in-process.
	if p.Driver == "" {
		if p.Mode == "demo" {
			p.Driver = "memory"
		} else {
			p.Driver = "mongo"
		}
	}
	if p.Driver != "mongo" && p.Driver != "memory" {
		return errors.Errorf("unknown record store driver %q: only 'mongo' and 'memory' are supported", p.Driver)
	}
	if p.Driver == "mongo" && p.DSN == "" {
		return errors.New("mongo driver requires a DSN")
	}

	if p.CacheTTLMillis <= 0 {
		p.CacheTTLMillis = 300_000
	}
	if p.CacheCleanupMillis <= 0 {
		p.CacheCleanupMillis = 60_000
	}
	return nil
}

// ListenAddr returns the address the HTTP server binds to.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}

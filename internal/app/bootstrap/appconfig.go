// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging level, CORS, body limits). AppConfig is everything specific
// to the storefront itself. The struct is passed to most lifecycle
// hooks, so any configuration needed during startup, request handling,
// or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: storefront-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Access token configuration
	AccessTokenKey string        // HMAC key for signing access tokens
	AccessTokenTTL time.Duration // Access token lifetime

	// Product cache configuration
	ProductCacheSize int           // Max entries in the product detail cache
	ProductCacheTTL  time.Duration // How long a cached product stays fresh

	// Abandoned cart cleanup
	CartCleanupInterval time.Duration // How often the cleanup worker runs
	CartStaleAfter      time.Duration // How long an untouched cart survives

	// Handler timeout tiers (see system/timeouts)
	TimeoutPing   time.Duration // Health checks and connectivity probes
	TimeoutShort  time.Duration // Single-document reads
	TimeoutMedium time.Duration // List queries and moderate writes
	TimeoutLong   time.Duration // Multi-collection writes
}

// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/storefront/internal/app/system/productcache"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the storefront.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STOREFRONT_MONGO_URI, STOREFRONT_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "storefront", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "storefront-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "access_token_key", Default: "dev-only-access-token-key-0123456789", Desc: "HMAC key for signing access tokens"},
	{Name: "access_token_ttl", Default: "1h", Desc: "Access token lifetime (e.g., 1h, 30m)"},

	{Name: "product_cache_size", Default: productcache.DefaultSize, Desc: "Max entries in the product detail cache"},
	{Name: "product_cache_ttl", Default: "5m", Desc: "Product cache entry lifetime (e.g., 5m, 30s)"},

	{Name: "cart_cleanup_interval", Default: "1h", Desc: "How often the abandoned cart cleanup runs"},
	{Name: "cart_stale_after", Default: "720h", Desc: "How long an untouched cart survives (default: 30 days)"},

	{Name: "timeout_ping", Default: "2s", Desc: "Handler timeout for health checks"},
	{Name: "timeout_short", Default: "5s", Desc: "Handler timeout for single-document reads"},
	{Name: "timeout_medium", Default: "10s", Desc: "Handler timeout for list queries and moderate writes"},
	{Name: "timeout_long", Default: "30s", Desc: "Handler timeout for multi-collection writes"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STOREFRONT_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STOREFRONT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		AccessTokenKey: appValues.String("access_token_key"),
		AccessTokenTTL: appValues.Duration("access_token_ttl", time.Hour),

		ProductCacheSize: appValues.Int("product_cache_size"),
		ProductCacheTTL:  appValues.Duration("product_cache_ttl", productcache.DefaultTTL),

		CartCleanupInterval: appValues.Duration("cart_cleanup_interval", time.Hour),
		CartStaleAfter:      appValues.Duration("cart_stale_after", 720*time.Hour),

		TimeoutPing:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked here to catch configuration errors
// early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must not be empty")
	}
	if appCfg.AccessTokenKey == "" {
		return fmt.Errorf("access_token_key must not be empty")
	}
	if appCfg.ProductCacheSize <= 0 {
		return fmt.Errorf("product_cache_size must be positive, got %d", appCfg.ProductCacheSize)
	}

	return nil
}

// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	cartstore "github.com/dalemusser/storefront/internal/app/store/carts"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"github.com/dalemusser/storefront/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// cartCleanup is started in Startup and stopped in Shutdown.
var cartCleanup *workers.CartCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. The
// handler timeout tiers are applied from config, and the abandoned cart
// cleanup worker starts so stale carts are purged for the lifetime of
// the process.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(appCfg.TimeoutPing, appCfg.TimeoutShort,
		appCfg.TimeoutMedium, appCfg.TimeoutLong)

	cartCleanup = workers.NewCartCleanup(
		cartstore.New(deps.MongoDatabase),
		logger,
		appCfg.CartCleanupInterval,
		appCfg.CartStaleAfter,
	)
	cartCleanup.Start()

	logger.Info("storefront starting",
		zap.String("env", coreCfg.Env),
		zap.String("database", appCfg.MongoDatabase))
	return nil
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	cartfeature "github.com/dalemusser/storefront/internal/app/features/cart"
	credentialsfeature "github.com/dalemusser/storefront/internal/app/features/credentials"
	healthfeature "github.com/dalemusser/storefront/internal/app/features/health"
	productsfeature "github.com/dalemusser/storefront/internal/app/features/products"
	salesfeature "github.com/dalemusser/storefront/internal/app/features/sales"
	"github.com/dalemusser/storefront/internal/app/system/auth"
	"github.com/dalemusser/storefront/internal/app/system/productcache"
	"github.com/dalemusser/storefront/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the session manager and
// token minter, applies the session-loading middleware globally, and
// mounts the feature routers: health, product catalog, cart, credentials,
// and the sale strip.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	tokens, err := auth.NewTokenMinter(appCfg.AccessTokenKey, appCfg.AccessTokenTTL)
	if err != nil {
		logger.Error("token minter init failed", zap.Error(err))
		return nil, err
	}

	cache := productcache.New(appCfg.ProductCacheSize, appCfg.ProductCacheTTL)

	r := chi.NewRouter()

	r.Use(requestlog.Middleware(logger))

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Product catalog: public reads, admin-gated writes
	productHandler := productsfeature.NewHandler(deps.MongoDatabase, cache, logger)
	r.Mount("/product", productsfeature.Routes(productHandler))

	// Cart: all endpoints require a signed-in user
	cartHandler := cartfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/cart", cartfeature.Routes(cartHandler))

	// Signup and signin
	credentialsHandler := credentialsfeature.NewHandler(deps.MongoDatabase, sessionMgr, tokens, logger)
	r.Mount("/credentials", credentialsfeature.Routes(credentialsHandler))

	// On-sale items for the landing page
	salesHandler := salesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/sales", salesfeature.Routes(salesHandler))

	return r, nil
}

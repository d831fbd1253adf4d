// Package products exposes the catalog HTTP surface: admin product
// management plus the public list/filter and single-product endpoints.
package products

import (
	productstore "github.com/dalemusser/storefront/internal/app/store/products"
	"github.com/dalemusser/storefront/internal/app/system/productcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Products *productstore.Store
	Cache    *productcache.Cache
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, cache *productcache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		Products: productstore.New(db, logger),
		Cache:    cache,
		Log:      logger,
	}
}

// isValidID reports whether id is a 24-character hex ObjectID. IDs are
// validated before any store access is attempted.
func isValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

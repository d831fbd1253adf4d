// Package sales serves the discounted-items strip shown on the
// storefront landing page.
package sales

import (
	"context"
	"net/http"

	productstore "github.com/dalemusser/storefront/internal/app/store/products"
	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// saleItemLimit caps how many items the strip shows.
const saleItemLimit = 8

type Handler struct {
	Products *productstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Products: productstore.New(db, logger),
		Log:      logger,
	}
}

// HandleList returns the newest on-sale products.
// GET /sales
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Products.Sales(ctx, saleItemLimit)
	if err != nil {
		h.Log.Error("sales: list items", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		"message": "Items fetched successfully",
		"data":    items,
	})
}

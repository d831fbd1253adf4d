package products

import (
	"context"
	"net/http"

	productstore "github.com/dalemusser/storefront/internal/app/store/products"
	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/paging"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleList returns the filtered, sorted, paginated catalog.
// GET /product
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := productstore.ParseListQuery(r)
	page := paging.Parse(r)

	items, total, err := h.Products.List(ctx, q, page)
	if err != nil {
		h.Log.Error("list products", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		"data":       items,
		"pagination": page.MetaFor(total),
	})
}

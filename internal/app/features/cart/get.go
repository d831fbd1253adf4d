package cart

import (
	"context"
	"net/http"

	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleGet returns the user's cart with product details resolved.
// A user without a cart gets an empty result, not an error.
// GET /cart/get
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "User not found")
			return
		}
		h.Log.Error("get cart: load user", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	resolved, err := h.Carts.GetResolved(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Write(w, http.StatusOK, httpjson.Envelope{
				"message": "No cart available for this user",
				"data":    []any{},
			})
			return
		}
		h.Log.Error("get cart: resolve cart", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		"message": "Cart retrieved successfully",
		"data":    resolved,
	})
}

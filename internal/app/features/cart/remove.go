package cart

import (
	"context"
	"net/http"

	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type removeRequest struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Model     string `json:"model"`
}

// HandleRemove splices a line item out of the cart.
// DELETE /cart/delete
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req removeRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		httpjson.BadRequest(w, "Product ID is required")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Carts.GetByUser(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Cart not found")
			return
		}
		h.Log.Error("remove from cart: load cart", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	i := c.FindLine(productID, req.Color, req.Model)
	if i < 0 {
		httpjson.NotFound(w, "Product not found in cart")
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)

	if !h.saveCart(ctx, w, c, "remove from cart") {
		return
	}

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		"message": "Item removed from cart successfully",
		"data":    c,
	})
}

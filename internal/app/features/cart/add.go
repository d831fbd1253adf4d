package cart

import (
	"context"
	"net/http"

	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"github.com/dalemusser/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Model     string `json:"model"`
}

// HandleAdd adds a line item, merging into an existing line when the
// (productId, color, model) triple already exists.
// POST /cart/add
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req addRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 || req.Model == "" {
		httpjson.BadRequest(w, "Invalid product details")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	product, err := h.Products.GetByID(ctx, productID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Product not found")
			return
		}
		h.Log.Error("add to cart: load product", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	// Stock is checked, not reserved: two concurrent adds against the
	// last unit can both pass this gate.
	if !product.Available || product.Stock < req.Quantity {
		httpjson.BadRequest(w, "Product not available or insufficient stock")
		return
	}

	c, err := h.Carts.GetByUser(ctx, userID)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.Log.Error("add to cart: load cart", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		// Lazily created on first add.
		c = &models.Cart{UserID: userID}
	}

	effective := product.EffectivePrice()

	if i := c.FindLine(productID, req.Color, req.Model); i >= 0 {
		// Merge: new quantity at the current effective price.
		c.Lines[i].Quantity += req.Quantity
		c.Lines[i].TotalPrice = effective * float64(c.Lines[i].Quantity)
	} else {
		c.Lines = append(c.Lines, models.CartLine{
			ProductID:  productID,
			Quantity:   req.Quantity,
			Color:      req.Color,
			Model:      req.Model,
			TotalPrice: effective * float64(req.Quantity),
		})
	}

	if !h.saveCart(ctx, w, c, "add to cart") {
		return
	}

	var image string
	if len(product.Image) > 0 {
		image = product.Image[0]
	}

	httpjson.Write(w, http.StatusCreated, httpjson.Envelope{
		"message": "Item added to cart successfully",
		"data":    c,
		"productDetails": httpjson.Envelope{
			"name":  product.ItemName,
			"price": effective,
			"image": image,
		},
	})
}

package products

import (
	"context"
	"net/http"

	"github.com/dalemusser/storefront/internal/app/system/htmlsanitize"
	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"github.com/dalemusser/storefront/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleGet fetches one product, serving repeat reads from the cache.
// GET /product/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidID(id) {
		httpjson.BadRequest(w, "Invalid product ID")
		return
	}

	if p, ok := h.Cache.Get(id); ok {
		httpjson.Write(w, http.StatusOK, httpjson.Envelope{"data": p})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	oid, _ := primitive.ObjectIDFromHex(id)
	p, err := h.Products.GetByID(ctx, oid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Product not found")
			return
		}
		h.Log.Error("get product", zap.String("id", id), zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Cache.Put(id, *p)
	httpjson.Write(w, http.StatusOK, httpjson.Envelope{"data": p})
}

type updateRequest struct {
	ItemName    *string           `json:"itemName"`
	Description *string           `json:"description"`
	Image       *[]string         `json:"image"`
	Price       *float64          `json:"price"`
	Category    *string           `json:"category"`
	Rating      *float64          `json:"rating"`
	Discount    *float64          `json:"discount"`
	Stock       *int              `json:"stock"`
	Brand       *string           `json:"brand"`
	Tags        *[]string         `json:"tags"`
	ItemModel   *[]string         `json:"itemModel"`
	Colors      *[]string         `json:"colors"`
	Materials   *[]string         `json:"materials"`
	Features    *[]string         `json:"features"`
	Details     *[]string         `json:"details"`
	Variants    *[]models.Variant `json:"variants"`
	IsOnSale    *bool             `json:"isOnSale"`
	IsFeatured  *bool             `json:"isFeatured"`
	Available   *bool             `json:"available"`
}

// set builds the $set patch from the provided fields only.
func (req updateRequest) set() bson.M {
	set := bson.M{}
	if req.ItemName != nil {
		set["item_name"] = *req.ItemName
	}
	if req.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*req.Description)
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}
	if req.Discount != nil {
		set["discount"] = *req.Discount
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Brand != nil {
		set["brand"] = *req.Brand
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.ItemModel != nil {
		set["item_model"] = *req.ItemModel
	}
	if req.Colors != nil {
		set["colors"] = *req.Colors
	}
	if req.Materials != nil {
		set["materials"] = *req.Materials
	}
	if req.Features != nil {
		set["features"] = *req.Features
	}
	if req.Details != nil {
		set["details"] = htmlsanitize.SanitizeAll(*req.Details)
	}
	if req.Variants != nil {
		set["variants"] = *req.Variants
	}
	if req.IsOnSale != nil {
		set["is_on_sale"] = *req.IsOnSale
	}
	if req.IsFeatured != nil {
		set["is_featured"] = *req.IsFeatured
	}
	if req.Available != nil {
		set["available"] = *req.Available
	}
	return set
}

// HandleUpdate applies a partial update and invalidates the cache entry.
// PUT /product/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidID(id) {
		httpjson.BadRequest(w, "Invalid product ID")
		return
	}

	var req updateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	set := req.set()
	if len(set) == 0 {
		httpjson.BadRequest(w, "Request body is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	oid, _ := primitive.ObjectIDFromHex(id)
	updated, err := h.Products.Update(ctx, oid, set)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Product not found")
			return
		}
		h.Log.Error("update product", zap.String("id", id), zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Cache.Invalidate(id)

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		"message": "Product updated successfully",
		"data":    updated,
	})
}

// HandleDelete removes a product and invalidates the cache entry.
// DELETE /product/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidID(id) {
		httpjson.BadRequest(w, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	oid, _ := primitive.ObjectIDFromHex(id)
	deleted, err := h.Products.Delete(ctx, oid)
	if err != nil {
		h.Log.Error("delete product", zap.String("id", id), zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "Product not found")
		return
	}

	h.Cache.Invalidate(id)

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		"message": "Product deleted successfully",
		"id":      id,
	})
}

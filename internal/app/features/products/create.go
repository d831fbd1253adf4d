package products

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/dalemusser/storefront/internal/app/store/products"
	"github.com/dalemusser/storefront/internal/app/system/htmlsanitize"
	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"github.com/dalemusser/storefront/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	ItemName    string           `json:"itemName"`
	Description string           `json:"description"`
	Image       []string         `json:"image"`
	Price       float64          `json:"price"`
	Category    string           `json:"category"`
	Stock       int              `json:"stock"`
	Brand       string           `json:"brand"`
	Discount    float64          `json:"discount"`
	ItemModel   []string         `json:"itemModel"`
	Details     []string         `json:"details"`
	Tags        []string         `json:"tags"`
	Colors      []string         `json:"colors"`
	Materials   []string         `json:"materials"`
	Features    []string         `json:"features"`
	Variants    []models.Variant `json:"variants"`
	IsOnSale    bool             `json:"isOnSale"`
	IsFeatured  bool             `json:"isFeatured"`
}

func (req createRequest) missingField() bool {
	if req.Brand == "" || req.ItemName == "" || req.Category == "" {
		return true
	}
	if len(req.ItemModel) == 0 || len(req.Details) == 0 || len(req.Tags) == 0 ||
		len(req.Image) == 0 || len(req.Colors) == 0 || len(req.Materials) == 0 ||
		len(req.Features) == 0 {
		return true
	}
	return req.Price <= 0 || req.Stock <= 0
}

// HandleCreate creates a catalog entry.
// POST /product
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.missingField() {
		httpjson.BadRequest(w, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Products.Create(ctx, models.Product{
		ItemName:    req.ItemName,
		Description: htmlsanitize.Sanitize(req.Description),
		Image:       req.Image,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Brand:       req.Brand,
		Discount:    req.Discount,
		ItemModel:   req.ItemModel,
		Details:     htmlsanitize.SanitizeAll(req.Details),
		Tags:        req.Tags,
		Colors:      req.Colors,
		Materials:   req.Materials,
		Features:    req.Features,
		Variants:    req.Variants,
		IsOnSale:    req.IsOnSale,
		IsFeatured:  req.IsFeatured,
		Available:   true,
	})
	if err != nil {
		// SKU derivation has no uniqueness guarantee, so a collision
		// surfaces here as an internal error rather than a validation
		// message. Kept as-is until the SKU scheme changes.
		if errors.Is(err, productstore.ErrDuplicateSKU) {
			h.Log.Error("create product: sku collision",
				zap.String("brand", req.Brand),
				zap.String("item_name", req.ItemName))
		} else {
			h.Log.Error("create product", zap.Error(err))
		}
		httpjson.Internal(w)
		return
	}

	h.Log.Info("product created",
		zap.String("id", created.ID.Hex()),
		zap.String("sku", created.SKU))

	httpjson.Write(w, http.StatusCreated, httpjson.Envelope{
		"message": "Item created successfully",
		"data":    created,
	})
}

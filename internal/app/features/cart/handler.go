// Package cart implements the per-user cart line-item lifecycle:
// add, update-quantity, remove, and fetch with product details resolved.
//
// Every operation requires a resolved session identity before any store
// access. Line identity within a cart is the (productId, color, model)
// triple. Mutations are read-then-write over the whole cart document,
// guarded by a per-document version: a write that lost the race against
// a concurrent mutation is rejected with 409 and the client retries.
package cart

import (
	"context"
	"net/http"

	cartstore "github.com/dalemusser/storefront/internal/app/store/carts"
	productstore "github.com/dalemusser/storefront/internal/app/store/products"
	userstore "github.com/dalemusser/storefront/internal/app/store/users"
	"github.com/dalemusser/storefront/internal/app/system/auth"
	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Products *productstore.Store
	Carts    *cartstore.Store
	Users    *userstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Products: productstore.New(db, logger),
		Carts:    cartstore.New(db),
		Users:    userstore.New(db),
		Log:      logger,
	}
}

// currentUserID resolves the session identity to an ObjectID. A missing
// or malformed identity writes the 401 response and returns false; no
// store access happens in that case.
func currentUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "User not authenticated")
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Invalid user session")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// saveCart persists a mutated cart. A stale-version rejection is mapped
// to 409 so the client can re-read and retry; other failures are logged
// and surface as 500. Returns false when a response has been written.
func (h *Handler) saveCart(ctx context.Context, w http.ResponseWriter, c *models.Cart, op string) bool {
	if err := h.Carts.Save(ctx, c); err != nil {
		if err == cartstore.ErrStaleCart {
			httpjson.Conflict(w, "Cart was modified by another request, please retry")
			return false
		}
		h.Log.Error(op+": save cart", zap.Error(err))
		httpjson.Internal(w)
		return false
	}
	return true
}

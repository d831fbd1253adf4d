// internal/domain/models/cart.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one row in a cart. Its identity within the cart is the
// (ProductID, Color, Model) triple; two lines with the same triple are
// the same entry and must be merged, not duplicated.
type CartLine struct {
	ProductID  primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Color      string             `bson:"color,omitempty" json:"color,omitempty"`
	Model      string             `bson:"model" json:"model"`
	TotalPrice float64            `bson:"total_price" json:"totalPrice"`
}

// SameEntry reports whether the line matches the composite key.
func (l CartLine) SameEntry(productID primitive.ObjectID, color, model string) bool {
	return l.ProductID == productID && l.Color == color && l.Model == model
}

// Cart holds a single user's line items. There is at most one cart
// document per user (unique index on user_id); it is created lazily on
// the first add and never explicitly deleted.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Lines  []CartLine         `bson:"products" json:"products"`

	// Version guards read-then-write mutations: a save only succeeds
	// when the stored version still matches the one that was read.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FindLine returns the index of the line matching the composite key,
// or -1 when no such line exists.
func (c Cart) FindLine(productID primitive.ObjectID, color, model string) int {
	for i, l := range c.Lines {
		if l.SameEntry(productID, color, model) {
			return i
		}
	}
	return -1
}

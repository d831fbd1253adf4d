// internal/domain/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a shopper review embedded on a product document.
type Review struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"` // 1-5
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Variant is an optional per-color/size override of price and stock.
type Variant struct {
	Color string   `bson:"color,omitempty" json:"color,omitempty"`
	Size  string   `bson:"size,omitempty" json:"size,omitempty"`
	Price *float64 `bson:"price,omitempty" json:"price,omitempty"`
	Stock *int     `bson:"stock,omitempty" json:"stock,omitempty"`
}

// Product is a catalog entry.
//
// Discount is a percentage (0-100). The effective unit price a shopper
// pays is Price * (1 - Discount/100).
//
// SKU is derived from brand/item/category prefixes at create time and is
// only as unique as the store's unique index makes it.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemName    string             `bson:"item_name" json:"itemName"`
	Description string             `bson:"description" json:"description"`
	Image       []string           `bson:"image" json:"image"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Rating      float64            `bson:"rating" json:"rating"`
	Discount    float64            `bson:"discount" json:"discount"`
	Stock       int                `bson:"stock" json:"stock"`
	Comments    []string           `bson:"comments,omitempty" json:"comments,omitempty"`
	Brand       string             `bson:"brand" json:"brand"`
	Reviews     []Review           `bson:"reviews,omitempty" json:"reviews,omitempty"`
	SKU         string             `bson:"sku" json:"sku"`
	Tags        []string           `bson:"tags" json:"tags"`
	ItemModel   []string           `bson:"item_model" json:"itemModel"`
	Colors      []string           `bson:"colors" json:"colors"`
	Materials   []string           `bson:"materials" json:"materials"`
	Features    []string           `bson:"features" json:"features"`
	Details     []string           `bson:"details" json:"details"`
	Variants    []Variant          `bson:"variants,omitempty" json:"variants,omitempty"`
	IsOnSale    bool               `bson:"is_on_sale" json:"isOnSale"`
	IsFeatured  bool               `bson:"is_featured" json:"isFeatured"`
	Available   bool               `bson:"available" json:"available"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// EffectivePrice returns the unit price after the discount percentage.
func (p Product) EffectivePrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/storefront/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProduct inserts a product with sensible defaults, overridden by
// any non-zero fields on p. Name, category, and brand default to
// placeholder values; stock defaults to 10 and the product is available.
func (f *Fixtures) CreateProduct(ctx context.Context, p models.Product) models.Product {
	f.t.Helper()

	now := time.Now().UTC()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.ItemName == "" {
		p.ItemName = "Test Product"
	}
	if p.Category == "" {
		p.Category = "gadgets"
	}
	if p.Brand == "" {
		p.Brand = "Acme"
	}
	if p.Price == 0 {
		p.Price = 19.99
	}
	if p.Stock == 0 {
		p.Stock = 10
	}
	if p.SKU == "" {
		p.SKU = fmt.Sprintf("TST-%s", p.ID.Hex()[18:])
	}
	p.Available = true
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if _, err := f.db.Collection("products").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test product: %v", err)
	}
	return p
}

// CreateProducts inserts n products named "Item 1" through "Item n",
// with creation times one minute apart so sort order is deterministic.
func (f *Fixtures) CreateProducts(ctx context.Context, n int) []models.Product {
	f.t.Helper()

	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	out := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, f.CreateProduct(ctx, models.Product{
			ItemName:  fmt.Sprintf("Item %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return out
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: "$2a$10$0000000000000000000000uTestHashNotUsableForLogin00000",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateShopper creates a test user with the "user" role.
func (f *Fixtures) CreateShopper(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test", "Shopper", email, "user")
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test", "Admin", email, "admin")
}

// CreateCart inserts a cart for the given user with the supplied lines.
func (f *Fixtures) CreateCart(ctx context.Context, userID primitive.ObjectID, lines ...models.CartLine) models.Cart {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Cart{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Lines:     lines,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Lines == nil {
		c.Lines = []models.CartLine{}
	}

	if _, err := f.db.Collection("carts").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test cart: %v", err)
	}
	return c
}

// Line builds a cart line for a product with the composite identity
// fields filled in.
func Line(productID primitive.ObjectID, qty int, color, model string, totalPrice float64) models.CartLine {
	return models.CartLine{
		ProductID:  productID,
		Quantity:   qty,
		Color:      color,
		Model:      model,
		TotalPrice: totalPrice,
	}
}

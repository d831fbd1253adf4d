package productstore_test

import (
	"errors"
	"testing"

	productstore "github.com/dalemusser/storefront/internal/app/store/products"
	"github.com/dalemusser/storefront/internal/domain/models"
	"github.com/dalemusser/storefront/internal/testutil"
	"go.uber.org/zap"
)

func TestCreate_DerivesSKUAndDetectsCollision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := models.Product{
		ItemName: "Leather Case",
		Brand:    "Nomad",
		Category: "phone-cases",
		Price:    49.99,
		Stock:    5,
	}
	created, err := store.Create(ctx, p)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.SKU != "NOM-LEA-PHO" {
		t.Errorf("sku: got %q, want %q", created.SKU, "NOM-LEA-PHO")
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	// A different product with the same three prefixes collides on the
	// unique SKU index.
	p.ItemName = "Lear Jet Case"
	if _, err := store.Create(ctx, p); !errors.Is(err, productstore.ErrDuplicateSKU) {
		t.Errorf("expected ErrDuplicateSKU, got %v", err)
	}
}

package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/storefront/internal/app/store/users"
	"github.com/dalemusser/storefront/internal/domain/models"
	"github.com/dalemusser/storefront/internal/testutil"
)

func TestCreate_NormalizesAndDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName:    "  Ada ",
		LastName:     " Lovelace ",
		Email:        " Ada@Example.COM ",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("email: got %q", created.Email)
	}
	if created.FirstName != "Ada" || created.LastName != "Lovelace" {
		t.Errorf("names not trimmed: %q %q", created.FirstName, created.LastName)
	}
	if created.Role != "user" {
		t.Errorf("role default: got %q", created.Role)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	// Lookup is case-insensitive through normalization.
	got, err := store.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Error("GetByEmail returned a different user")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{FirstName: "A", LastName: "B", Email: "dup@test.com", PasswordHash: "h"}
	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	// Same address with different casing collides after normalization.
	u.Email = "DUP@test.com"
	if _, err := store.Create(ctx, u); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FirstName: "A", LastName: "B", Email: "role@test.com",
		PasswordHash: "h", Role: "superuser",
	})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

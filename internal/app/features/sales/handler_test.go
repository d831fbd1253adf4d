package sales_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/storefront/internal/app/features/sales"
	"github.com/dalemusser/storefront/internal/domain/models"
	"github.com/dalemusser/storefront/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := sales.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 1; i <= 10; i++ {
		fixtures.CreateProduct(ctx, models.Product{
			ItemName:  fmt.Sprintf("Sale %d", i),
			IsOnSale:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	fixtures.CreateProduct(ctx, models.Product{ItemName: "Full Price"})

	req := httptest.NewRequest("GET", "/sales", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string           `json:"message"`
		Data    []models.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Items fetched successfully" {
		t.Errorf("message: got %q", resp.Message)
	}
	// Capped at eight, newest first, on-sale only.
	if len(resp.Data) != 8 {
		t.Fatalf("expected 8 items, got %d", len(resp.Data))
	}
	if resp.Data[0].ItemName != "Sale 10" {
		t.Errorf("expected newest sale item first, got %q", resp.Data[0].ItemName)
	}
	for _, p := range resp.Data {
		if !p.IsOnSale {
			t.Errorf("non-sale item in response: %q", p.ItemName)
		}
	}
}

func TestHandleList_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := sales.NewHandler(db, zap.NewNop())

	req := httptest.NewRequest("GET", "/sales", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var resp struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no items, got %d", len(resp.Data))
	}
}

package productstore

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestParseListQuery(t *testing.T) {
	r := httptest.NewRequest("GET",
		`/product?category=phone-cases&price=50&rating=4&isOnSale=true&brand=Apex&search=clear&sortBy=price&sortOrder=desc`, nil)
	q := ParseListQuery(r)

	if q.Category != "phone-cases" || q.PriceMax != "50" || q.RatingMin != "4" {
		t.Errorf("parsed query mismatch: %+v", q)
	}
	if q.IsOnSale != "true" || q.Brand != "Apex" || q.Search != "clear" {
		t.Errorf("parsed query mismatch: %+v", q)
	}
	if q.SortBy != "price" || q.SortOrder != "desc" {
		t.Errorf("parsed sort mismatch: %+v", q)
	}
}

func TestFilter_Basic(t *testing.T) {
	q := ListQuery{Category: "phone-cases", PriceMax: "50", RatingMin: "4", IsOnSale: "true", Brand: "Apex"}
	f := q.Filter(zap.NewNop())

	if f["category"] != "phone-cases" {
		t.Errorf("category: got %v", f["category"])
	}
	if price, ok := f["price"].(bson.M); !ok || price["$lte"] != 50.0 {
		t.Errorf("price: got %v", f["price"])
	}
	if rating, ok := f["rating"].(bson.M); !ok || rating["$gte"] != 4.0 {
		t.Errorf("rating: got %v", f["rating"])
	}
	if f["is_on_sale"] != true {
		t.Errorf("is_on_sale: got %v", f["is_on_sale"])
	}
	if f["brand"] != "Apex" {
		t.Errorf("brand: got %v", f["brand"])
	}
}

func TestFilter_IsOnSale_NotTrueLiteral(t *testing.T) {
	f := ListQuery{IsOnSale: "yes"}.Filter(zap.NewNop())
	// Anything but the literal "true" filters for false.
	if f["is_on_sale"] != false {
		t.Errorf("is_on_sale: got %v, want false", f["is_on_sale"])
	}
}

func TestFilter_UnparseablePrice_Skipped(t *testing.T) {
	f := ListQuery{PriceMax: "cheap"}.Filter(zap.NewNop())
	if _, ok := f["price"]; ok {
		t.Error("expected unparseable price to be skipped")
	}
}

func TestFilter_ModelJSONList(t *testing.T) {
	f := ListQuery{Model: `["iPhone 15","Pixel 8"]`}.Filter(zap.NewNop())

	in, ok := f["item_model"].(bson.M)
	if !ok {
		t.Fatalf("item_model: got %T", f["item_model"])
	}
	rx, ok := in["$in"].([]primitive.Regex)
	if !ok || len(rx) != 2 {
		t.Fatalf("$in: got %v", in["$in"])
	}
	if rx[0].Pattern != "iPhone 15" || rx[0].Options != "i" {
		t.Errorf("regex 0: got %+v", rx[0])
	}
}

func TestFilter_ModelBadJSON_DroppedEntirely(t *testing.T) {
	f := ListQuery{Model: "not-json"}.Filter(zap.NewNop())
	if _, ok := f["item_model"]; ok {
		t.Error("expected malformed model filter to be dropped, not treated literally")
	}
}

func TestFilter_ModelEmptyList_Dropped(t *testing.T) {
	f := ListQuery{Model: `[]`}.Filter(zap.NewNop())
	if _, ok := f["item_model"]; ok {
		t.Error("expected empty model list to be dropped")
	}
}

func TestFilter_TagsJSONList(t *testing.T) {
	f := ListQuery{Tags: `["iphone-cases"]`}.Filter(zap.NewNop())

	in, ok := f["tags"].(bson.M)
	if !ok {
		t.Fatalf("tags: got %T", f["tags"])
	}
	rx := in["$in"].([]primitive.Regex)
	if len(rx) != 1 || rx[0].Pattern != "iphone-cases" || rx[0].Options != "i" {
		t.Errorf("tags regex: got %+v", rx)
	}
}

func TestFilter_TagsBadJSON_FallsBackToLiteral(t *testing.T) {
	f := ListQuery{Tags: "iphone-cases"}.Filter(zap.NewNop())

	rx, ok := f["tags"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected literal regex fallback for tags, got %T", f["tags"])
	}
	if rx.Options != "i" {
		t.Errorf("tags fallback options: got %q", rx.Options)
	}
}

func TestFilter_TagsEmptyList_Dropped(t *testing.T) {
	// "[]" parses, so the literal fallback must not fire; an empty list
	// means no tags filter at all.
	f := ListQuery{Tags: `[]`}.Filter(zap.NewNop())
	if got, ok := f["tags"]; ok {
		t.Errorf("expected empty tags list to be dropped, got %v", got)
	}
}

func TestFilter_TagsEscapesMetacharacters(t *testing.T) {
	f := ListQuery{Tags: `["c++ (pro)"]`}.Filter(zap.NewNop())

	in := f["tags"].(bson.M)
	rx := in["$in"].([]primitive.Regex)
	// QuoteMeta must neutralize the + and parens.
	if rx[0].Pattern == "c++ (pro)" {
		t.Errorf("metacharacters not escaped: %q", rx[0].Pattern)
	}
}

func TestFilter_Search(t *testing.T) {
	f := ListQuery{Search: "magsafe"}.Filter(zap.NewNop())

	or, ok := f["$or"].(bson.A)
	if !ok {
		t.Fatalf("$or: got %T", f["$or"])
	}
	if len(or) != 4 {
		t.Errorf("$or branches: got %d, want 4", len(or))
	}
	first := or[0].(bson.M)
	rx := first["item_name"].(primitive.Regex)
	if rx.Pattern != "magsafe" || rx.Options != "i" {
		t.Errorf("search regex: got %+v", rx)
	}
}

func TestFilter_Empty(t *testing.T) {
	f := ListQuery{}.Filter(zap.NewNop())
	if len(f) != 0 {
		t.Errorf("expected empty filter, got %v", f)
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name      string
		q         ListQuery
		wantField string
		wantOrder int
	}{
		{"default newest first", ListQuery{}, "created_at", -1},
		{"ascending by default", ListQuery{SortBy: "price"}, "price", 1},
		{"descending", ListQuery{SortBy: "price", SortOrder: "desc"}, "price", -1},
		{"api name mapped", ListQuery{SortBy: "itemName"}, "item_name", 1},
		{"createdAt mapped", ListQuery{SortBy: "createdAt", SortOrder: "desc"}, "created_at", -1},
		{"unknown order treated as asc", ListQuery{SortBy: "rating", SortOrder: "DESC"}, "rating", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.q.Sort()
			if len(s) != 1 {
				t.Fatalf("sort doc length: got %d", len(s))
			}
			if s[0].Key != tt.wantField {
				t.Errorf("field: got %q, want %q", s[0].Key, tt.wantField)
			}
			if s[0].Value != tt.wantOrder {
				t.Errorf("order: got %v, want %d", s[0].Value, tt.wantOrder)
			}
		})
	}
}

func TestDeriveSKU(t *testing.T) {
	tests := []struct {
		brand, item, category string
		want                  string
	}{
		{"Apex", "Clear Case", "phone-cases", "APE-CLE-PHO"},
		{"ab", "x", "phone-cases", "AB-X-PHO"}, // short inputs used whole
		{"apex", "clear", "cases", "APE-CLE-CAS"},
		{"Öko Gear", "Hülle", "cases", "ÖKO-HÜL-CAS"}, // rune-safe prefixes
	}
	for _, tt := range tests {
		if got := DeriveSKU(tt.brand, tt.item, tt.category); got != tt.want {
			t.Errorf("DeriveSKU(%q, %q, %q) = %q, want %q", tt.brand, tt.item, tt.category, got, tt.want)
		}
	}
}

func TestHasFilters(t *testing.T) {
	if (ListQuery{}).HasFilters() {
		t.Error("empty query should report no filters")
	}
	if !(ListQuery{Tags: "x"}).HasFilters() {
		t.Error("query with tags should report filters")
	}
}

package productstore

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ListQuery carries the raw catalog filter parameters as the client sent
// them. Conversion and degradation rules live in Filter/Sort, so a bad
// parameter never fails the request:
//
//   - model: JSON-encoded list; unparseable input drops the filter.
//   - tags: JSON-encoded list, falling back to a single literal
//     case-insensitive match when the JSON does not parse. The asymmetry
//     with model is deliberate and load-bearing for existing clients.
type ListQuery struct {
	Category  string
	PriceMax  string
	RatingMin string
	IsOnSale  string
	Brand     string
	ItemModel string
	Model     string
	Tags      string
	Search    string
	SortBy    string
	SortOrder string
}

// ParseListQuery extracts the catalog filter parameters from a request.
func ParseListQuery(r *http.Request) ListQuery {
	get := r.URL.Query().Get
	return ListQuery{
		Category:  get("category"),
		PriceMax:  get("price"),
		RatingMin: get("rating"),
		IsOnSale:  get("isOnSale"),
		Brand:     get("brand"),
		ItemModel: get("itemModel"),
		Model:     get("model"),
		Tags:      get("tags"),
		Search:    get("search"),
		SortBy:    get("sortBy"),
		SortOrder: get("sortOrder"),
	}
}

// Filter translates the parameters into a Mongo filter document.
func (q ListQuery) Filter(log *zap.Logger) bson.M {
	filter := bson.M{}

	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.PriceMax != "" {
		if v, err := strconv.ParseFloat(q.PriceMax, 64); err == nil {
			filter["price"] = bson.M{"$lte": v}
		} else {
			log.Warn("ignoring unparseable price filter", zap.String("price", q.PriceMax))
		}
	}
	if q.RatingMin != "" {
		if v, err := strconv.ParseFloat(q.RatingMin, 64); err == nil {
			filter["rating"] = bson.M{"$gte": v}
		} else {
			log.Warn("ignoring unparseable rating filter", zap.String("rating", q.RatingMin))
		}
	}
	if q.IsOnSale != "" {
		filter["is_on_sale"] = q.IsOnSale == "true"
	}
	if q.ItemModel != "" {
		filter["item_model"] = q.ItemModel
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}

	if q.Model != "" {
		if rx, ok := parseAnyOf(q.Model); ok {
			if len(rx) > 0 {
				filter["item_model"] = bson.M{"$in": rx}
			}
		} else {
			// Unparseable model lists degrade to "no filter", not an error.
			log.Warn("ignoring unparseable model filter", zap.String("model", q.Model))
		}
	}

	if q.Tags != "" {
		if rx, ok := parseAnyOf(q.Tags); ok {
			// An empty parsed list means "no tags filter", not a literal
			// match on "[]".
			if len(rx) > 0 {
				filter["tags"] = bson.M{"$in": rx}
			}
		} else {
			// Fall back to matching the raw value as a single literal tag.
			filter["tags"] = ciLiteral(q.Tags)
		}
	}

	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"item_name": primitive.Regex{Pattern: q.Search, Options: "i"}},
			bson.M{"category": primitive.Regex{Pattern: q.Search, Options: "i"}},
			bson.M{"brand": primitive.Regex{Pattern: q.Search, Options: "i"}},
			bson.M{"description": primitive.Regex{Pattern: q.Search, Options: "i"}},
		}
	}

	return filter
}

// Sort returns the sort document: the requested field ascending unless
// sortOrder is "desc", defaulting to newest-created-first.
func (q ListQuery) Sort() bson.D {
	if q.SortBy == "" {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	order := 1
	if q.SortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: sortField(q.SortBy), Value: order}}
}

// sortField maps the API's field names onto their stored counterparts.
// Unknown names pass through untouched.
func sortField(name string) string {
	switch name {
	case "itemName":
		return "item_name"
	case "createdAt":
		return "created_at"
	case "isOnSale":
		return "is_on_sale"
	default:
		return name
	}
}

// parseAnyOf decodes a JSON string array into case-insensitive literal
// regexes for an $in match. ok is false only when the value does not
// parse as a JSON array of strings; an empty array parses to an empty
// result with ok true.
func parseAnyOf(raw string) ([]primitive.Regex, bool) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	rx := make([]primitive.Regex, len(values))
	for i, v := range values {
		rx[i] = ciLiteral(v)
	}
	return rx, true
}

// ciLiteral escapes regex metacharacters and matches case-insensitively.
func ciLiteral(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// HasFilters reports whether any filter parameter was supplied (used for
// logging; an unfiltered list is the browse-all page).
func (q ListQuery) HasFilters() bool {
	return strings.Join([]string{
		q.Category, q.PriceMax, q.RatingMin, q.IsOnSale,
		q.Brand, q.ItemModel, q.Model, q.Tags, q.Search,
	}, "") != ""
}

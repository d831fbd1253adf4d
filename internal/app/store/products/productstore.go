package productstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/storefront/internal/app/system/paging"
	"github.com/dalemusser/storefront/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{c: db.Collection("products"), log: logger}
}

// ErrDuplicateSKU is returned when the derived SKU collides with an
// existing product. SKU derivation has no uniqueness guarantee of its
// own; the unique index is the only enforcement.
var ErrDuplicateSKU = errors.New("a product with this SKU already exists")

// DeriveSKU builds the catalog code from brand/item/category prefixes:
// first three characters of each, uppercased, dash-joined.
func DeriveSKU(brand, itemName, category string) string {
	return prefix3(brand) + "-" + prefix3(itemName) + "-" + prefix3(category)
}

func prefix3(s string) string {
	// Slice characters, not bytes, so multi-byte names produce valid
	// UTF-8 fragments.
	if r := []rune(s); len(r) > 3 {
		s = string(r[:3])
	}
	return strings.ToUpper(s)
}

// Create inserts a new product, deriving its SKU and timestamps.
func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = primitive.NewObjectID()
	p.SKU = DeriveSKU(p.Brand, p.ItemName, p.Category)

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Product{}, ErrDuplicateSKU
		}
		return models.Product{}, err
	}
	return p, nil
}

// GetByID loads a product by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a $set patch and returns the updated document.
// Returns mongo.ErrNoDocuments when no product matches.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	set["updated_at"] = time.Now()

	var p models.Product
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List runs the catalog query: filter, sort, and pagination window, plus
// a count of all matches with the identical filter (no window applied).
func (s *Store) List(ctx context.Context, q ListQuery, page paging.Page) ([]models.Product, int64, error) {
	filter := q.Filter(s.log)

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	find := options.Find().
		SetSort(q.Sort()).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Sales returns the newest on-sale products, capped at limit.
func (s *Store) Sales(ctx context.Context, limit int64) ([]models.Product, error) {
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"is_on_sale": true}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

package cartstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrStaleCart is returned by Save when the cart was modified by another
// request after this one read it. The caller should re-read and retry.
var ErrStaleCart = errors.New("cart was modified concurrently")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("carts")}
}

// GetByUser loads the user's cart document. Returns
// mongo.ErrNoDocuments when the user has no cart yet.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var c models.Cart
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save persists the whole cart document, creating it when it does not
// exist yet. Cart mutations are read-then-write over the full document,
// so the write only applies when the stored version still matches the
// one carried in c; otherwise ErrStaleCart is returned and the caller
// must re-read and retry.
func (s *Store) Save(ctx context.Context, c *models.Cart) error {
	now := time.Now()
	c.UpdatedAt = now

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = now
		c.Version = 1
		if _, err := s.c.InsertOne(ctx, c); err != nil {
			if wafflemongo.IsDup(err) {
				// Another request created this user's cart first.
				return ErrStaleCart
			}
			return err
		}
		return nil
	}

	prev := c.Version
	c.Version = prev + 1
	res, err := s.c.ReplaceOne(ctx,
		bson.M{"user_id": c.UserID, "version": prev},
		c,
	)
	if err != nil {
		c.Version = prev
		return err
	}
	if res.MatchedCount == 0 {
		c.Version = prev
		return ErrStaleCart
	}
	return nil
}

// DeleteStale removes carts that have not been touched within the
// threshold. Returns how many carts were deleted.
func (s *Store) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := s.c.DeleteMany(ctx, bson.M{"updated_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ResolvedLine is a cart line with its product document expanded.
// Product is nil when the referenced product no longer exists.
type ResolvedLine struct {
	models.CartLine `bson:",inline"`
	Product         *models.Product `json:"product,omitempty"`
}

// ResolvedCart is the cart as returned to clients: every line carries
// the full product fields.
type ResolvedCart struct {
	ID        primitive.ObjectID `json:"id"`
	UserID    primitive.ObjectID `json:"userId"`
	Lines     []ResolvedLine     `json:"products"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// GetResolved loads the user's cart with product documents joined in
// via $lookup. Returns mongo.ErrNoDocuments when no cart exists.
func (s *Store) GetResolved(ctx context.Context, userID primitive.ObjectID) (*ResolvedCart, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user_id": userID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "products.product_id",
			"foreignField": "_id",
			"as":           "product_docs",
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		models.Cart `bson:",inline"`
		ProductDocs []models.Product `bson:"product_docs"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	row := rows[0]
	byID := make(map[primitive.ObjectID]*models.Product, len(row.ProductDocs))
	for i := range row.ProductDocs {
		byID[row.ProductDocs[i].ID] = &row.ProductDocs[i]
	}

	resolved := &ResolvedCart{
		ID:        row.ID,
		UserID:    row.UserID,
		Lines:     make([]ResolvedLine, 0, len(row.Lines)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for _, l := range row.Lines {
		resolved.Lines = append(resolved.Lines, ResolvedLine{
			CartLine: l,
			Product:  byID[l.ProductID],
		})
	}
	return resolved, nil
}

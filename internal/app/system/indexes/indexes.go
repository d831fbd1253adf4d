// Package indexes creates the MongoDB indexes the application's error
// semantics depend on: duplicate-email detection on signup, the
// store-level SKU uniqueness that surfaces colliding SKUs on create,
// and the one-cart-per-user invariant.
package indexes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Ensure creates all required indexes. It is idempotent and safe to run
// on every startup.
func Ensure(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	specs := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{
			collection: "users",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
		},
		{
			collection: "products",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "sku", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_sku"),
			},
		},
		{
			collection: "products",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("category_created"),
			},
		},
		{
			collection: "carts",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_user_cart"),
			},
		},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.collection).Indexes().CreateOne(ctx, s.model); err != nil {
			logger.Error("index create failed",
				zap.String("collection", s.collection),
				zap.Error(err))
			return err
		}
	}

	logger.Info("indexes ensured", zap.Int("count", len(specs)))
	return nil
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := ensureQuotesIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure quotes indexes: %w", err)
	}
	return nil
}

func ensureQuotesIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColQuotes)
	models := []mongo.IndexModel{
		newIndex("created_at", 1, "quotes_created_at", false),
		// valid_until backs the retention worker's expiry sweep
		newIndex("valid_until", 1, "quotes_valid_until", false),
		newIndex("vehicle_vin", 1, "quotes_vehicle_vin", false),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func newIndex(field string, asc int32, name string, unique bool) mongo.IndexModel {
	opts := options.Index().SetName(name)
	if unique {
		opts = opts.SetUnique(true)
	}
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: asc}},
		Options: opts,
	}
}

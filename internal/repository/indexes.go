package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the repositories depend on. Unique
// indexes back the business-key uniqueness checks at the database level.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{"users", mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique}},
		{"students", mongo.IndexModel{Keys: bson.D{{Key: "studentId", Value: 1}}, Options: unique}},
		{"rooms", mongo.IndexModel{Keys: bson.D{{Key: "roomId", Value: 1}}, Options: unique}},
		{"settings", mongo.IndexModel{Keys: bson.D{{Key: "key", Value: 1}}, Options: unique}},
		{"attendances", mongo.IndexModel{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "type", Value: 1}, {Key: "timestamp", Value: -1}}}},
		{"fees", mongo.IndexModel{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "month", Value: 1}}}},
		{"notifications", mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{"room_requests", mongo.IndexModel{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "status", Value: 1}}}},
	}

	for _, spec := range specs {
		if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model); err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
	}
	return nil
}

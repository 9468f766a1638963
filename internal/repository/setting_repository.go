package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noah-isme/hms-api/internal/models"
)

// SettingRepository persists keyed configuration documents, including
// the mess menu.
type SettingRepository struct {
	col *mongo.Collection
}

// NewSettingRepository builds a setting repository.
func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{col: db.Collection("settings")}
}

type messMenuDoc struct {
	ID        string          `bson:"_id"`
	Key       string          `bson:"key"`
	Value     models.MessMenu `bson:"value"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

// GetMessMenu fetches the weekly mess menu, or mongo.ErrNoDocuments
// when none is stored yet.
func (r *SettingRepository) GetMessMenu(ctx context.Context) (*models.MessMenu, error) {
	var doc messMenuDoc
	if err := r.col.FindOne(ctx, bson.M{"key": models.SettingKeyMessMenu}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("find mess menu: %w", err)
	}
	return &doc.Value, nil
}

// UpsertMessMenu stores the weekly mess menu, creating the settings
// document on first write.
func (r *SettingRepository) UpsertMessMenu(ctx context.Context, menu models.MessMenu) error {
	filter := bson.M{"key": models.SettingKeyMessMenu}
	update := bson.M{
		"$set":         bson.M{"value": menu, "updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "key": models.SettingKeyMessMenu},
	}
	opts := options.UpdateOne().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert mess menu: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noah-isme/hms-api/internal/models"
)

// AnnouncementRepository persists admin announcements.
type AnnouncementRepository struct {
	col *mongo.Collection
}

// NewAnnouncementRepository builds an announcement repository.
func NewAnnouncementRepository(db *mongo.Database) *AnnouncementRepository {
	return &AnnouncementRepository{col: db.Collection("announcements")}
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	a.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// List returns all announcements, newest first.
func (r *AnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer cursor.Close(ctx)

	announcements := []models.Announcement{}
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("decode announcements: %w", err)
	}
	return announcements, nil
}

// Delete removes an announcement document.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete announcement: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Count returns the number of announcements.
func (r *AnnouncementRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count announcements: %w", err)
	}
	return count, nil
}

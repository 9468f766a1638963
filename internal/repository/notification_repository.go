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

// NotificationRepository persists in-app notifications.
type NotificationRepository struct {
	col *mongo.Collection
}

// NewNotificationRepository builds a notification repository.
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection("notifications")}
}

// Create inserts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// visibleFilter matches personal notifications for the user plus role
// broadcasts (nil user, matching role).
func visibleFilter(userID string, role models.UserRole) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"user": userID},
		bson.M{"user": nil, "role": role},
	}}
}

// ListForUser returns the notifications visible to an account, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, role models.UserRole, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.col.Find(ctx, visibleFilter(userID, role), opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return notifications, nil
}

// ListAll returns the most recent notifications across every account.
func (r *NotificationRepository) ListAll(ctx context.Context, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list all notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications visible to an account.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string, role models.UserRole) (int64, error) {
	filter := visibleFilter(userID, role)
	filter["read"] = false
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags one notification as read. The visibility filter keeps
// accounts from touching notifications that are not theirs.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string, role models.UserRole) error {
	filter := visibleFilter(userID, role)
	filter["_id"] = id
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mark notification read: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// MarkAllRead flags every notification visible to an account as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string, role models.UserRole) error {
	if _, err := r.col.UpdateMany(ctx, visibleFilter(userID, role), bson.M{"$set": bson.M{"read": true}}); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// Delete removes a notification document.
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete notification: %w", mongo.ErrNoDocuments)
	}
	return nil
}

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

// RoomRequestRepository persists room allocation requests.
type RoomRequestRepository struct {
	col *mongo.Collection
}

// NewRoomRequestRepository builds a room request repository.
func NewRoomRequestRepository(db *mongo.Database) *RoomRequestRepository {
	return &RoomRequestRepository{col: db.Collection("room_requests")}
}

// Create inserts a new request.
func (r *RoomRequestRepository) Create(ctx context.Context, req *models.RoomRequest) error {
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert room request: %w", err)
	}
	return nil
}

// GetByID fetches a request by document ID.
func (r *RoomRequestRepository) GetByID(ctx context.Context, id string) (*models.RoomRequest, error) {
	var req models.RoomRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, fmt.Errorf("find room request %s: %w", id, err)
	}
	return &req, nil
}

// List returns all requests, newest first.
func (r *RoomRequestRepository) List(ctx context.Context) ([]models.RoomRequest, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list room requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.RoomRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode room requests: %w", err)
	}
	return requests, nil
}

// ListByStudent returns a student's requests, newest first.
func (r *RoomRequestRepository) ListByStudent(ctx context.Context, studentID string) ([]models.RoomRequest, error) {
	cursor, err := r.col.Find(ctx, bson.M{"studentId": studentID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list room requests by student: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.RoomRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode room requests: %w", err)
	}
	return requests, nil
}

// ExistsPending reports whether the student already has a pending
// request for the given room.
func (r *RoomRequestRepository) ExistsPending(ctx context.Context, studentID, roomID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{
		"studentId": studentID,
		"roomId":    roomID,
		"status":    models.RoomRequestPending,
	})
	if err != nil {
		return false, fmt.Errorf("count pending room requests: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus transitions a request to a terminal state, recording
// the reviewer's remark.
func (r *RoomRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RoomRequestStatus, adminRemark string) error {
	update := bson.M{"$set": bson.M{
		"status":      status,
		"adminRemark": adminRemark,
		"updatedAt":   time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update room request status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update room request status: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a request document.
func (r *RoomRequestRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete room request: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete room request: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// CountByStatus returns the number of requests in a given state.
func (r *RoomRequestRepository) CountByStatus(ctx context.Context, status models.RoomRequestStatus) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("count room requests: %w", err)
	}
	return count, nil
}

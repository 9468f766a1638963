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

// LeaveRepository persists leave applications.
type LeaveRepository struct {
	col *mongo.Collection
}

// NewLeaveRepository builds a leave repository.
func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{col: db.Collection("leaves")}
}

// Create inserts a new leave application.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	now := time.Now().UTC()
	leave.CreatedAt = now
	leave.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, leave); err != nil {
		return fmt.Errorf("insert leave: %w", err)
	}
	return nil
}

// GetByID fetches a leave by document ID.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*models.Leave, error) {
	var leave models.Leave
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&leave); err != nil {
		return nil, fmt.Errorf("find leave %s: %w", id, err)
	}
	return &leave, nil
}

// List returns all leave applications, newest first.
func (r *LeaveRepository) List(ctx context.Context) ([]models.Leave, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer cursor.Close(ctx)

	leaves := []models.Leave{}
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("decode leaves: %w", err)
	}
	return leaves, nil
}

// ListByStudent returns a student's leave applications, newest first.
func (r *LeaveRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Leave, error) {
	cursor, err := r.col.Find(ctx, bson.M{"studentId": studentID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list leaves by student: %w", err)
	}
	defer cursor.Close(ctx)

	leaves := []models.Leave{}
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("decode leaves: %w", err)
	}
	return leaves, nil
}

// UpdateStatus transitions a leave to a terminal state.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, status models.LeaveStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update leave status: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a leave document.
func (r *LeaveRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete leave: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// CountByStatus returns the number of leaves in a given state.
func (r *LeaveRepository) CountByStatus(ctx context.Context, status models.LeaveStatus) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("count leaves: %w", err)
	}
	return count, nil
}

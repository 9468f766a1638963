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

// ComplaintRepository persists student complaints.
type ComplaintRepository struct {
	col *mongo.Collection
}

// NewComplaintRepository builds a complaint repository.
func NewComplaintRepository(db *mongo.Database) *ComplaintRepository {
	return &ComplaintRepository{col: db.Collection("complaints")}
}

// Create inserts a new complaint.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	now := time.Now().UTC()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, complaint); err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

// GetByID fetches a complaint by document ID.
func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&complaint); err != nil {
		return nil, fmt.Errorf("find complaint %s: %w", id, err)
	}
	return &complaint, nil
}

// List returns all complaints, newest first.
func (r *ComplaintRepository) List(ctx context.Context) ([]models.Complaint, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, fmt.Errorf("decode complaints: %w", err)
	}
	return complaints, nil
}

// ListByStudent returns a student's complaints, newest first.
func (r *ComplaintRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	cursor, err := r.col.Find(ctx, bson.M{"studentId": studentID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list complaints by student: %w", err)
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, fmt.Errorf("decode complaints: %w", err)
	}
	return complaints, nil
}

// Update replaces a complaint document.
func (r *ComplaintRepository) Update(ctx context.Context, complaint *models.Complaint) error {
	complaint.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": complaint.ID}, complaint)
	if err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update complaint: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a complaint document.
func (r *ComplaintRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete complaint: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// CountByStatus returns the number of complaints in a given state.
func (r *ComplaintRepository) CountByStatus(ctx context.Context, status models.ComplaintStatus) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("count complaints: %w", err)
	}
	return count, nil
}

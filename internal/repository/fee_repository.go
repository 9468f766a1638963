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

// FeeRepository persists hostel fee records.
type FeeRepository struct {
	col *mongo.Collection
}

// NewFeeRepository builds a fee repository.
func NewFeeRepository(db *mongo.Database) *FeeRepository {
	return &FeeRepository{col: db.Collection("fees")}
}

// Create inserts a new fee record.
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	now := time.Now().UTC()
	fee.CreatedAt = now
	fee.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, fee); err != nil {
		return fmt.Errorf("insert fee: %w", err)
	}
	return nil
}

// GetByID fetches a fee by document ID.
func (r *FeeRepository) GetByID(ctx context.Context, id string) (*models.Fee, error) {
	var fee models.Fee
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&fee); err != nil {
		return nil, fmt.Errorf("find fee %s: %w", id, err)
	}
	return &fee, nil
}

// List returns all fees, newest first.
func (r *FeeRepository) List(ctx context.Context) ([]models.Fee, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	defer cursor.Close(ctx)

	fees := []models.Fee{}
	if err := cursor.All(ctx, &fees); err != nil {
		return nil, fmt.Errorf("decode fees: %w", err)
	}
	return fees, nil
}

// ListByStudent returns a student's fees, newest first.
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Fee, error) {
	cursor, err := r.col.Find(ctx, bson.M{"studentId": studentID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list fees by student: %w", err)
	}
	defer cursor.Close(ctx)

	fees := []models.Fee{}
	if err := cursor.All(ctx, &fees); err != nil {
		return nil, fmt.Errorf("decode fees: %w", err)
	}
	return fees, nil
}

// ExistsForMonth reports whether the student is already charged for the month.
func (r *FeeRepository) ExistsForMonth(ctx context.Context, studentID, month string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"studentId": studentID, "month": month})
	if err != nil {
		return false, fmt.Errorf("count fees for month: %w", err)
	}
	return count > 0, nil
}

// Update replaces a fee document.
func (r *FeeRepository) Update(ctx context.Context, fee *models.Fee) error {
	fee.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": fee.ID}, fee)
	if err != nil {
		return fmt.Errorf("update fee: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update fee: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a fee document.
func (r *FeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete fee: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete fee: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// CountByStatus returns the number of fees in a given payment state.
func (r *FeeRepository) CountByStatus(ctx context.Context, status models.FeeStatus) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("count fees: %w", err)
	}
	return count, nil
}

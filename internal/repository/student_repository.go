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

// StudentRepository persists student profiles.
type StudentRepository struct {
	col *mongo.Collection
}

// NewStudentRepository builds a student repository over the given database.
func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection("students")}
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, student); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// GetByID fetches a student by document ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		return nil, fmt.Errorf("find student %s: %w", id, err)
	}
	return &student, nil
}

// GetByStudentID fetches a student by business key.
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	if err := r.col.FindOne(ctx, bson.M{"studentId": studentID}).Decode(&student); err != nil {
		return nil, fmt.Errorf("find student by studentId: %w", err)
	}
	return &student, nil
}

// ExistsByStudentID reports whether the business key is taken.
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"studentId": studentID})
	if err != nil {
		return false, fmt.Errorf("count students by studentId: %w", err)
	}
	return count > 0, nil
}

// List returns all students ordered by business key.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "studentId", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return students, nil
}

// Update replaces mutable fields of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": student.ID}, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update student: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a student document.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete student: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// UpdateRoomRefs rewrites every student assigned to oldRoomID so they
// reference newRoomID. Used when a room's business key changes.
func (r *StudentRepository) UpdateRoomRefs(ctx context.Context, oldRoomID, newRoomID string) error {
	update := bson.M{"$set": bson.M{"room": newRoomID, "updatedAt": time.Now().UTC()}}
	if _, err := r.col.UpdateMany(ctx, bson.M{"room": oldRoomID}, update); err != nil {
		return fmt.Errorf("update student room refs: %w", err)
	}
	return nil
}

// ClearRoomRefs detaches every student assigned to the given room.
func (r *StudentRepository) ClearRoomRefs(ctx context.Context, roomID string) error {
	update := bson.M{"$set": bson.M{"room": nil, "updatedAt": time.Now().UTC()}}
	if _, err := r.col.UpdateMany(ctx, bson.M{"room": roomID}, update); err != nil {
		return fmt.Errorf("clear student room refs: %w", err)
	}
	return nil
}

// Count returns the number of students.
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

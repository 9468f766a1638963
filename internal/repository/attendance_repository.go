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

// AttendanceRepository persists check-in and check-out events.
type AttendanceRepository struct {
	col *mongo.Collection
}

// NewAttendanceRepository builds an attendance repository.
func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection("attendances")}
}

// Create inserts a new attendance event.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	record.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// FindInWindowByType returns the student's event of the given type with
// a timestamp inside [from, to), or mongo.ErrNoDocuments.
func (r *AttendanceRepository) FindInWindowByType(ctx context.Context, studentID string, typ models.AttendanceType, from, to time.Time) (*models.Attendance, error) {
	filter := bson.M{
		"studentId": studentID,
		"type":      typ,
		"timestamp": bson.M{"$gte": from, "$lt": to},
	}
	var record models.Attendance
	if err := r.col.FindOne(ctx, filter).Decode(&record); err != nil {
		return nil, fmt.Errorf("find attendance in window: %w", err)
	}
	return &record, nil
}

// ListInWindow returns every event inside [from, to), oldest first.
func (r *AttendanceRepository) ListInWindow(ctx context.Context, from, to time.Time) ([]models.Attendance, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list attendance in window: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Attendance{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return records, nil
}

// ListByStudent returns a student's most recent events, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string, limit int64) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.col.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendance by student: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Attendance{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return records, nil
}

// CountCheckInsInWindow counts distinct students with a check-in inside
// [from, to).
func (r *AttendanceRepository) CountCheckInsInWindow(ctx context.Context, from, to time.Time) (int64, error) {
	filter := bson.M{
		"type":      models.AttendanceCheckIn,
		"timestamp": bson.M{"$gte": from, "$lt": to},
	}
	ids, err := r.col.Distinct(ctx, "studentId", filter).Raw()
	if err != nil {
		return 0, fmt.Errorf("count check-ins: %w", err)
	}
	values, err := ids.Values()
	if err != nil {
		return 0, fmt.Errorf("decode distinct check-ins: %w", err)
	}
	return int64(len(values)), nil
}

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

// RoomRepository persists hostel rooms.
type RoomRepository struct {
	col *mongo.Collection
}

// NewRoomRepository builds a room repository over the given database.
func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("rooms")}
}

// Create inserts a new room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	now := time.Now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now
	if room.Occupants == nil {
		room.Occupants = []string{}
	}
	if _, err := r.col.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

// GetByID fetches a room by document ID.
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&room); err != nil {
		return nil, fmt.Errorf("find room %s: %w", id, err)
	}
	return &room, nil
}

// GetByRoomID fetches a room by business key.
func (r *RoomRepository) GetByRoomID(ctx context.Context, roomID string) (*models.Room, error) {
	var room models.Room
	if err := r.col.FindOne(ctx, bson.M{"roomId": roomID}).Decode(&room); err != nil {
		return nil, fmt.Errorf("find room by roomId: %w", err)
	}
	return &room, nil
}

// ExistsByRoomID reports whether the business key is taken.
func (r *RoomRepository) ExistsByRoomID(ctx context.Context, roomID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return false, fmt.Errorf("count rooms by roomId: %w", err)
	}
	return count > 0, nil
}

// List returns all rooms ordered by business key.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "roomId", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return rooms, nil
}

// Update replaces a room document.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": room.ID}, room)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update room: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a room document.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete room: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// AddOccupant appends a student business key to the room's occupant list.
func (r *RoomRepository) AddOccupant(ctx context.Context, roomID, studentID string) error {
	update := bson.M{
		"$addToSet": bson.M{"occupants": studentID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"roomId": roomID}, update)
	if err != nil {
		return fmt.Errorf("add occupant: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("add occupant: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// RemoveOccupant removes a student business key from the room's occupant list.
func (r *RoomRepository) RemoveOccupant(ctx context.Context, roomID, studentID string) error {
	update := bson.M{
		"$pull": bson.M{"occupants": studentID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"roomId": roomID}, update); err != nil {
		return fmt.Errorf("remove occupant: %w", err)
	}
	return nil
}

// RemoveOccupantEverywhere strips the student from every room occupant
// list. Used when a student is deleted.
func (r *RoomRepository) RemoveOccupantEverywhere(ctx context.Context, studentID string) error {
	update := bson.M{
		"$pull": bson.M{"occupants": studentID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	if _, err := r.col.UpdateMany(ctx, bson.M{"occupants": studentID}, update); err != nil {
		return fmt.Errorf("remove occupant everywhere: %w", err)
	}
	return nil
}

// RenameOccupant rewrites a student business key in every occupant list.
func (r *RoomRepository) RenameOccupant(ctx context.Context, oldStudentID, newStudentID string) error {
	update := bson.M{
		"$set": bson.M{"occupants.$": newStudentID, "updatedAt": time.Now().UTC()},
	}
	if _, err := r.col.UpdateMany(ctx, bson.M{"occupants": oldStudentID}, update); err != nil {
		return fmt.Errorf("rename occupant: %w", err)
	}
	return nil
}

// Count returns the number of rooms.
func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return count, nil
}

// CountOccupied returns the number of rooms with at least one occupant.
func (r *RoomRepository) CountOccupied(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"occupants.0": bson.M{"$exists": true}})
	if err != nil {
		return 0, fmt.Errorf("count occupied rooms: %w", err)
	}
	return count, nil
}

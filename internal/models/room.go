package models

import "time"

// RoomStatus is derived from occupancy, never stored independently.
type RoomStatus string

const (
	RoomStatusEmpty   RoomStatus = "empty"
	RoomStatusPartial RoomStatus = "partial"
	RoomStatusFull    RoomStatus = "full"
)

// Room is a hostel room. Occupants holds student business keys.
type Room struct {
	ID          string    `bson:"_id" json:"id"`
	RoomID      string    `bson:"roomId" json:"roomId"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	Occupants   []string  `bson:"occupants" json:"occupants"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Status derives the occupancy state from occupant count and capacity.
func (r *Room) Status() RoomStatus {
	switch {
	case len(r.Occupants) == 0:
		return RoomStatusEmpty
	case len(r.Occupants) >= r.Capacity:
		return RoomStatusFull
	default:
		return RoomStatusPartial
	}
}

// RoomView is the API shape for a room, including the derived status.
type RoomView struct {
	Room
	Status RoomStatus `json:"status"`
}

// View wraps a room with its derived status.
func (r Room) View() RoomView {
	return RoomView{Room: r, Status: r.Status()}
}

// CreateRoomRequest creates a room.
type CreateRoomRequest struct {
	RoomID      string `json:"roomId" validate:"required,max=32"`
	Capacity    int    `json:"capacity" validate:"required,min=1,max=20"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url,max=512"`
	Description string `json:"description" validate:"omitempty,max=512"`
}

// UpdateRoomRequest mutates a room's identity, size or metadata.
type UpdateRoomRequest struct {
	RoomID      *string `json:"roomId" validate:"omitempty,max=32"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1,max=20"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=512"`
	Description *string `json:"description" validate:"omitempty,max=512"`
}

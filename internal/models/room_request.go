package models

import "time"

// RoomRequestStatus tracks the lifecycle of a room allocation request.
type RoomRequestStatus string

const (
	RoomRequestPending  RoomRequestStatus = "pending"
	RoomRequestApproved RoomRequestStatus = "approved"
	RoomRequestRejected RoomRequestStatus = "rejected"
)

// RoomRequest is a student's request to be assigned to a specific room.
// AdminRemark carries the reviewer's note back to the student.
type RoomRequest struct {
	ID          string            `bson:"_id" json:"id"`
	StudentID   string            `bson:"studentId" json:"studentId"`
	RoomID      string            `bson:"roomId" json:"roomId"`
	Status      RoomRequestStatus `bson:"status" json:"status"`
	Note        string            `bson:"note,omitempty" json:"note,omitempty"`
	AdminRemark string            `bson:"adminRemark,omitempty" json:"adminRemark,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// CreateRoomRequestRequest submits a new room allocation request.
type CreateRoomRequestRequest struct {
	RoomID string `json:"roomId" validate:"required,max=32"`
	Note   string `json:"note" validate:"omitempty,max=256"`
}

// DecideRoomRequestRequest is the optional body an admin sends when
// approving or rejecting a request.
type DecideRoomRequestRequest struct {
	AdminRemark string `json:"adminRemark" validate:"omitempty,max=256"`
}

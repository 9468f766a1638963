package models

import (
	"strings"
	"time"
)

// NormalizeKey uppercases a business key. Student and room keys are
// normalized before every comparison and before storage, so lookups
// are case-insensitive end to end.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Student is a hostel resident profile. Room holds the business key of
// the assigned room, nil when unassigned.
type Student struct {
	ID              string    `bson:"_id" json:"id"`
	StudentID       string    `bson:"studentId" json:"studentId"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address         string    `bson:"address,omitempty" json:"address,omitempty"`
	ProfilePhotoURL string    `bson:"profilePhotoUrl,omitempty" json:"profilePhotoUrl,omitempty"`
	Room            *string   `bson:"room" json:"room"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateStudentRequest registers a new student profile.
type CreateStudentRequest struct {
	StudentID       string  `json:"studentId" validate:"required,max=32"`
	Name            string  `json:"name" validate:"required,max=128"`
	Email           string  `json:"email" validate:"omitempty,email"`
	Phone           string  `json:"phone" validate:"omitempty,max=20"`
	Address         string  `json:"address" validate:"omitempty,max=256"`
	ProfilePhotoURL string  `json:"profilePhotoUrl" validate:"omitempty,url,max=512"`
	Room            *string `json:"room" validate:"omitempty,max=32"`
}

// UpdateStudentRequest mutates an existing student. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateStudentRequest struct {
	StudentID       *string `json:"studentId" validate:"omitempty,max=32"`
	Name            *string `json:"name" validate:"omitempty,max=128"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Address         *string `json:"address" validate:"omitempty,max=256"`
	ProfilePhotoURL *string `json:"profilePhotoUrl" validate:"omitempty,max=512"`
	Room            *string `json:"room" validate:"omitempty,max=32"`
	ClearRoom       bool    `json:"clearRoom,omitempty"`
}

// UpdateProfileRequest is the self-service subset a student may change
// on their own profile. Identity and room fields stay admin-only.
type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=128"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Address         *string `json:"address" validate:"omitempty,max=256"`
	ProfilePhotoURL *string `json:"profilePhotoUrl" validate:"omitempty,max=512"`
}

package models

import "time"

// Notification is an in-app message. User holds the target account ID
// for personal notifications and is nil for role broadcasts.
type Notification struct {
	ID        string    `bson:"_id" json:"id"`
	User      *string   `bson:"user" json:"user"`
	Role      UserRole  `bson:"role,omitempty" json:"role,omitempty"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

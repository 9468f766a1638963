package models

import "time"

// Announcement is a broadcast message posted by an admin.
type Announcement struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	PostedBy  string    `bson:"postedBy" json:"postedBy"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateAnnouncementRequest posts an announcement.
type CreateAnnouncementRequest struct {
	Title string `json:"title" validate:"required,max=128"`
	Body  string `json:"body" validate:"required,max=2048"`
}

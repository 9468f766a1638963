package models

import "time"

// ComplaintStatus tracks complaint resolution.
type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "open"
	ComplaintResolved ComplaintStatus = "resolved"
)

// Complaint is a maintenance or service grievance filed by a student.
type Complaint struct {
	ID          string          `bson:"_id" json:"id"`
	StudentID   string          `bson:"studentId" json:"studentId"`
	Title       string          `bson:"title" json:"title"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Status      ComplaintStatus `bson:"status" json:"status"`
	ResolvedAt  *time.Time      `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// CreateComplaintRequest files a new complaint.
type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required,max=128"`
	Description string `json:"description" validate:"omitempty,max=1024"`
}

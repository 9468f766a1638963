package models

import "time"

// LeaveStatus tracks leave application review.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveCategory classifies the reason for leave.
type LeaveCategory string

const (
	LeaveHome      LeaveCategory = "home"
	LeaveMedical   LeaveCategory = "medical"
	LeaveEmergency LeaveCategory = "emergency"
	LeaveOther     LeaveCategory = "other"
)

// Leave is a student's application to be away from the hostel.
type Leave struct {
	ID        string        `bson:"_id" json:"id"`
	StudentID string        `bson:"studentId" json:"studentId"`
	Category  LeaveCategory `bson:"category" json:"category"`
	Reason    string        `bson:"reason" json:"reason"`
	FromDate  time.Time     `bson:"fromDate" json:"fromDate"`
	ToDate    time.Time     `bson:"toDate" json:"toDate"`
	Status    LeaveStatus   `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CreateLeaveRequest applies for leave.
type CreateLeaveRequest struct {
	Category LeaveCategory `json:"category" validate:"required,oneof=home medical emergency other"`
	Reason   string        `json:"reason" validate:"required,max=512"`
	FromDate time.Time     `json:"fromDate" validate:"required"`
	ToDate   time.Time     `json:"toDate" validate:"required"`
}

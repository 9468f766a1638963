package models

import "time"

// FeeStatus is the payment state of a fee record.
type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePaid    FeeStatus = "paid"
)

// Fee is a monthly hostel fee charged to a student.
type Fee struct {
	ID        string    `bson:"_id" json:"id"`
	Student   string    `bson:"student" json:"student"`
	StudentID string    `bson:"studentId" json:"studentId"`
	Month     string    `bson:"month" json:"month"`
	Amount    float64   `bson:"amount" json:"amount"`
	Status    FeeStatus `bson:"status" json:"status"`
	PaidAt    *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateFeeRequest charges a single student for a month.
type CreateFeeRequest struct {
	StudentID string  `json:"studentId" validate:"required,max=32"`
	Month     string  `json:"month" validate:"required,max=16"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// GenerateFeesRequest creates fee records for every student for a month.
type GenerateFeesRequest struct {
	Month  string  `json:"month" validate:"required,max=16"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// UpdateFeeRequest edits an existing fee record.
type UpdateFeeRequest struct {
	Month  *string    `json:"month" validate:"omitempty,max=16"`
	Amount *float64   `json:"amount" validate:"omitempty,gt=0"`
	Status *FeeStatus `json:"status" validate:"omitempty,oneof=pending paid"`
}

package models

import "time"

// AttendanceType distinguishes check-in and check-out records.
type AttendanceType string

const (
	AttendanceCheckIn  AttendanceType = "checkin"
	AttendanceCheckOut AttendanceType = "checkout"
)

// Attendance is one check-in or check-out event for a student.
type Attendance struct {
	ID        string         `bson:"_id" json:"id"`
	StudentID string         `bson:"studentId" json:"studentId"`
	Type      AttendanceType `bson:"type" json:"type"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// TodayAttendanceStatus summarises a student's attendance for the
// current day. CanCheckIn and CanCheckOut tell the client which action
// is available next; Logs holds today's events, newest first.
type TodayAttendanceStatus struct {
	CheckedIn   bool         `json:"checkedIn"`
	CheckedOut  bool         `json:"checkedOut"`
	CanCheckIn  bool         `json:"canCheckIn"`
	CanCheckOut bool         `json:"canCheckOut"`
	CheckInAt   *time.Time   `json:"checkInAt,omitempty"`
	CheckOutAt  *time.Time   `json:"checkOutAt,omitempty"`
	Logs        []Attendance `json:"logs"`
}

// AttendanceSummary is a per-student aggregate used by admin listings.
type AttendanceSummary struct {
	StudentID string     `json:"studentId"`
	Name      string     `json:"name,omitempty"`
	CheckInAt *time.Time `json:"checkInAt,omitempty"`
	CheckOutAt *time.Time `json:"checkOutAt,omitempty"`
	Present   bool       `json:"present"`
}

package models

// DashboardStats aggregates counts shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents     int64 `json:"totalStudents"`
	TotalRooms        int64 `json:"totalRooms"`
	OccupiedRooms     int64 `json:"occupiedRooms"`
	AvailableRooms    int64 `json:"availableRooms"`
	PendingFees       int64 `json:"pendingFees"`
	OpenComplaints    int64 `json:"openComplaints"`
	PendingLeaves     int64 `json:"pendingLeaves"`
	PendingRequests   int64 `json:"pendingRequests"`
	PresentToday      int64 `json:"presentToday"`
	TotalAnnouncements int64 `json:"totalAnnouncements"`
}

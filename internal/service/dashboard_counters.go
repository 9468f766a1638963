package service

import (
	"context"
	"time"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/repository"
)

// RepositoryCounters adapts the individual repositories to the
// dashboard counting interface.
type RepositoryCounters struct {
	Students      *repository.StudentRepository
	Rooms         *repository.RoomRepository
	Fees          *repository.FeeRepository
	Complaints    *repository.ComplaintRepository
	Leaves        *repository.LeaveRepository
	Requests      *repository.RoomRequestRepository
	Attendance    *repository.AttendanceRepository
	Announcements *repository.AnnouncementRepository
	Now           func() time.Time
}

func (c *RepositoryCounters) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// CountStudents returns the total student count.
func (c *RepositoryCounters) CountStudents(ctx context.Context) (int64, error) {
	return c.Students.Count(ctx)
}

// CountRooms returns the total room count.
func (c *RepositoryCounters) CountRooms(ctx context.Context) (int64, error) {
	return c.Rooms.Count(ctx)
}

// CountOccupiedRooms returns the number of rooms with occupants.
func (c *RepositoryCounters) CountOccupiedRooms(ctx context.Context) (int64, error) {
	return c.Rooms.CountOccupied(ctx)
}

// CountPendingFees returns the number of unpaid fee records.
func (c *RepositoryCounters) CountPendingFees(ctx context.Context) (int64, error) {
	return c.Fees.CountByStatus(ctx, models.FeePending)
}

// CountOpenComplaints returns the number of unresolved complaints.
func (c *RepositoryCounters) CountOpenComplaints(ctx context.Context) (int64, error) {
	return c.Complaints.CountByStatus(ctx, models.ComplaintOpen)
}

// CountPendingLeaves returns the number of undecided leave applications.
func (c *RepositoryCounters) CountPendingLeaves(ctx context.Context) (int64, error) {
	return c.Leaves.CountByStatus(ctx, models.LeavePending)
}

// CountPendingRequests returns the number of undecided room requests.
func (c *RepositoryCounters) CountPendingRequests(ctx context.Context) (int64, error) {
	return c.Requests.CountByStatus(ctx, models.RoomRequestPending)
}

// CountPresentToday returns the number of students checked in today.
func (c *RepositoryCounters) CountPresentToday(ctx context.Context) (int64, error) {
	from, to := dayWindow(c.now())
	return c.Attendance.CountCheckInsInWindow(ctx, from, to)
}

// CountAnnouncements returns the total announcement count.
func (c *RepositoryCounters) CountAnnouncements(ctx context.Context) (int64, error) {
	return c.Announcements.Count(ctx)
}

package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type attendanceRepository interface {
	Create(ctx context.Context, record *models.Attendance) error
	FindInWindowByType(ctx context.Context, studentID string, typ models.AttendanceType, from, to time.Time) (*models.Attendance, error)
	ListInWindow(ctx context.Context, from, to time.Time) ([]models.Attendance, error)
	ListByStudent(ctx context.Context, studentID string, limit int64) ([]models.Attendance, error)
}

type attendanceStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
}

// AttendanceService enforces the daily check-in/check-out state
// machine. A day runs from local midnight to the next local midnight.
type AttendanceService struct {
	records  attendanceRepository
	students attendanceStudentRepository
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewAttendanceService builds an AttendanceService.
func NewAttendanceService(records attendanceRepository, students attendanceStudentRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		records:  records,
		students: students,
		logger:   logger.Sugar(),
		now:      time.Now,
	}
}

// dayWindow returns the local-midnight bounds of the day containing t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.Add(24 * time.Hour)
}

// CheckIn records a check-in for today. A second check-in on the same
// day is rejected and the existing timestamp is returned in the error
// details.
func (s *AttendanceService) CheckIn(ctx context.Context, studentID string) (*models.Attendance, error) {
	now := s.now()
	from, to := dayWindow(now)

	existing, err := s.records.FindInWindowByType(ctx, studentID, models.AttendanceCheckIn, from, to)
	if err == nil {
		return nil, appErrors.ErrAlreadyCheckedIn.WithDetails(map[string]interface{}{"checkInAt": existing.Timestamp})
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	record := &models.Attendance{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Type:      models.AttendanceCheckIn,
		Timestamp: now,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	s.logger.Infow("student checked in", "student_id", studentID)
	return record, nil
}

// CheckOut records a check-out for today. It requires a same-day
// check-in and rejects a second check-out.
func (s *AttendanceService) CheckOut(ctx context.Context, studentID string) (*models.Attendance, error) {
	now := s.now()
	from, to := dayWindow(now)

	if _, err := s.records.FindInWindowByType(ctx, studentID, models.AttendanceCheckIn, from, to); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrNotCheckedIn
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	existing, err := s.records.FindInWindowByType(ctx, studentID, models.AttendanceCheckOut, from, to)
	if err == nil {
		return nil, appErrors.ErrAlreadyCheckedOut.WithDetails(map[string]interface{}{"checkOutAt": existing.Timestamp})
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	record := &models.Attendance{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Type:      models.AttendanceCheckOut,
		Timestamp: now,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	s.logger.Infow("student checked out", "student_id", studentID)
	return record, nil
}

// TodayStatus summarises a student's attendance for the current day,
// including which action is available next and today's events newest
// first.
func (s *AttendanceService) TodayStatus(ctx context.Context, studentID string) (*models.TodayAttendanceStatus, error) {
	from, to := dayWindow(s.now())
	status := &models.TodayAttendanceStatus{Logs: []models.Attendance{}}

	if checkin, err := s.records.FindInWindowByType(ctx, studentID, models.AttendanceCheckIn, from, to); err == nil {
		status.CheckedIn = true
		ts := checkin.Timestamp
		status.CheckInAt = &ts
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if checkout, err := s.records.FindInWindowByType(ctx, studentID, models.AttendanceCheckOut, from, to); err == nil {
		status.CheckedOut = true
		ts := checkout.Timestamp
		status.CheckOutAt = &ts
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	status.CanCheckIn = !status.CheckedIn
	status.CanCheckOut = status.CheckedIn && !status.CheckedOut

	records, err := s.records.ListInWindow(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	for _, record := range records {
		if record.StudentID == studentID {
			status.Logs = append(status.Logs, record)
		}
	}
	sort.Slice(status.Logs, func(i, j int) bool {
		return status.Logs[i].Timestamp.After(status.Logs[j].Timestamp)
	})

	return status, nil
}

// ListToday returns a per-student attendance summary for the current
// day, covering every registered student.
func (s *AttendanceService) ListToday(ctx context.Context) ([]models.AttendanceSummary, error) {
	from, to := dayWindow(s.now())

	records, err := s.records.ListInWindow(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	byStudent := make(map[string]*models.AttendanceSummary, len(students))
	summaries := make([]models.AttendanceSummary, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, models.AttendanceSummary{
			StudentID: student.StudentID,
			Name:      student.Name,
		})
	}
	for i := range summaries {
		byStudent[summaries[i].StudentID] = &summaries[i]
	}

	for _, record := range records {
		summary, ok := byStudent[record.StudentID]
		if !ok {
			continue
		}
		ts := record.Timestamp
		switch record.Type {
		case models.AttendanceCheckIn:
			summary.CheckInAt = &ts
			summary.Present = true
		case models.AttendanceCheckOut:
			summary.CheckOutAt = &ts
		}
	}

	return summaries, nil
}

// History returns a student's most recent attendance events, at most
// 50 per call.
func (s *AttendanceService) History(ctx context.Context, studentID string, limit int64) ([]models.Attendance, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	records, err := s.records.ListByStudent(ctx, models.NormalizeKey(studentID), limit)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return records, nil
}

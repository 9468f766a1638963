package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type leaveRepository interface {
	Create(ctx context.Context, leave *models.Leave) error
	GetByID(ctx context.Context, id string) (*models.Leave, error)
	List(ctx context.Context) ([]models.Leave, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Leave, error)
	UpdateStatus(ctx context.Context, id string, status models.LeaveStatus) error
	Delete(ctx context.Context, id string) error
}

type leaveStudentRepository interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
}

// LeaveService manages leave applications.
type LeaveService struct {
	leaves   leaveRepository
	students leaveStudentRepository
	notify   notifier
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewLeaveService builds a LeaveService.
func NewLeaveService(leaves leaveRepository, students leaveStudentRepository, notify notifier, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{
		leaves:   leaves,
		students: students,
		notify:   notify,
		validate: validate,
		logger:   logger.Sugar(),
	}
}

// Apply files a leave application for a student. The date range must
// be ordered.
func (s *LeaveService) Apply(ctx context.Context, studentID string, req models.CreateLeaveRequest) (*models.Leave, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}
	if req.ToDate.Before(req.FromDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "toDate must not be before fromDate")
	}

	leave := &models.Leave{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Category:  req.Category,
		Reason:    req.Reason,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Status:    models.LeavePending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if s.notify != nil {
		s.notify.NotifyRole(models.RoleAdmin, "New leave application",
			"Student "+studentID+" applied for "+string(req.Category)+" leave")
	}
	s.logger.Infow("leave applied", "student_id", studentID, "category", req.Category)
	return leave, nil
}

// List returns all leave applications, newest first.
func (s *LeaveService) List(ctx context.Context) ([]models.Leave, error) {
	leaves, err := s.leaves.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return leaves, nil
}

// ListByStudent returns one student's leave applications.
func (s *LeaveService) ListByStudent(ctx context.Context, studentID string) ([]models.Leave, error) {
	leaves, err := s.leaves.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return leaves, nil
}

// Decide transitions a pending leave to approved or rejected.
func (s *LeaveService) Decide(ctx context.Context, id string, status models.LeaveStatus) (*models.Leave, error) {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be approved or rejected")
	}

	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "leave not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if leave.Status != models.LeavePending {
		return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "leave already processed")
	}

	if err := s.leaves.UpdateStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	leave.Status = status

	if s.notify != nil {
		if student, err := s.students.GetByStudentID(ctx, leave.StudentID); err == nil {
			s.notify.NotifyStudentProfile(student.ID, "Leave "+string(status),
				"Your leave application has been "+string(status))
		}
	}
	s.logger.Infow("leave decided", "leave_id", id, "status", status)
	return leave, nil
}

// Delete removes a leave application.
func (s *LeaveService) Delete(ctx context.Context, id string) error {
	if err := s.leaves.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "leave not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	s.logger.Infow("leave deleted", "leave_id", id)
	return nil
}

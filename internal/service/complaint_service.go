package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type complaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, id string) (*models.Complaint, error)
	List(ctx context.Context) ([]models.Complaint, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error)
	Update(ctx context.Context, complaint *models.Complaint) error
	Delete(ctx context.Context, id string) error
}

// ComplaintService manages student complaints.
type ComplaintService struct {
	complaints complaintRepository
	notify     notifier
	validate   *validator.Validate
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// NewComplaintService builds a ComplaintService.
func NewComplaintService(complaints complaintRepository, notify notifier, validate *validator.Validate, logger *zap.Logger) *ComplaintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{
		complaints: complaints,
		notify:     notify,
		validate:   validate,
		logger:     logger.Sugar(),
		now:        time.Now,
	}
}

// Create files a complaint on behalf of a student.
func (s *ComplaintService) Create(ctx context.Context, studentID string, req models.CreateComplaintRequest) (*models.Complaint, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	complaint := &models.Complaint{
		ID:          uuid.NewString(),
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ComplaintOpen,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if s.notify != nil {
		s.notify.NotifyRole(models.RoleAdmin, "New complaint", req.Title)
	}
	s.logger.Infow("complaint filed", "student_id", studentID, "title", req.Title)
	return complaint, nil
}

// List returns all complaints, newest first.
func (s *ComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	complaints, err := s.complaints.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return complaints, nil
}

// ListByStudent returns one student's complaints.
func (s *ComplaintService) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	complaints, err := s.complaints.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return complaints, nil
}

// Resolve marks an open complaint resolved.
func (s *ComplaintService) Resolve(ctx context.Context, id string) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if complaint.Status == models.ComplaintResolved {
		return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "complaint already resolved")
	}

	complaint.Status = models.ComplaintResolved
	resolvedAt := s.now().UTC()
	complaint.ResolvedAt = &resolvedAt
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	s.logger.Infow("complaint resolved", "complaint_id", id)
	return complaint, nil
}

// Delete removes a complaint record.
func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	if err := s.complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return nil
}

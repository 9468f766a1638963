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

type feeRepository interface {
	Create(ctx context.Context, fee *models.Fee) error
	GetByID(ctx context.Context, id string) (*models.Fee, error)
	List(ctx context.Context) ([]models.Fee, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Fee, error)
	ExistsForMonth(ctx context.Context, studentID, month string) (bool, error)
	Update(ctx context.Context, fee *models.Fee) error
	Delete(ctx context.Context, id string) error
}

type feeStudentRepository interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
}

// FeeService manages monthly hostel fees.
type FeeService struct {
	fees     feeRepository
	students feeStudentRepository
	notify   notifier
	validate *validator.Validate
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewFeeService builds a FeeService.
func NewFeeService(fees feeRepository, students feeStudentRepository, notify notifier, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{
		fees:     fees,
		students: students,
		notify:   notify,
		validate: validate,
		logger:   logger.Sugar(),
		now:      time.Now,
	}
}

// Create charges one student for a month. Duplicate charges for the
// same student and month are rejected.
func (s *FeeService) Create(ctx context.Context, req models.CreateFeeRequest) (*models.Fee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	student, err := s.students.GetByStudentID(ctx, models.NormalizeKey(req.StudentID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	exists, err := s.fees.ExistsForMonth(ctx, student.StudentID, req.Month)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "fee already charged for this month")
	}

	fee := &models.Fee{
		ID:        uuid.NewString(),
		Student:   student.ID,
		StudentID: student.StudentID,
		Month:     req.Month,
		Amount:    req.Amount,
		Status:    models.FeePending,
	}
	if err := s.fees.Create(ctx, fee); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if s.notify != nil {
		s.notify.NotifyStudentProfile(student.ID, "Fee charged",
			"Hostel fee for "+req.Month+" has been charged")
	}
	s.logger.Infow("fee created", "student_id", fee.StudentID, "month", fee.Month)
	return fee, nil
}

// GenerateMonthly charges every student for a month, skipping students
// who already have a record for it. It returns the number of fees
// created.
func (s *FeeService) GenerateMonthly(ctx context.Context, req models.GenerateFeesRequest) (int, error) {
	if err := s.validate.Struct(req); err != nil {
		return 0, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return 0, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	created := 0
	for i := range students {
		student := &students[i]
		exists, err := s.fees.ExistsForMonth(ctx, student.StudentID, req.Month)
		if err != nil {
			return created, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		if exists {
			continue
		}
		fee := &models.Fee{
			ID:        uuid.NewString(),
			Student:   student.ID,
			StudentID: student.StudentID,
			Month:     req.Month,
			Amount:    req.Amount,
			Status:    models.FeePending,
		}
		if err := s.fees.Create(ctx, fee); err != nil {
			return created, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		created++
	}

	if s.notify != nil && created > 0 {
		s.notify.NotifyRole(models.RoleStudent, "Fees generated",
			"Hostel fee for "+req.Month+" has been charged")
	}
	s.logger.Infow("monthly fees generated", "month", req.Month, "created", created)
	return created, nil
}

// List returns all fees. Records whose student document reference was
// lost are repaired opportunistically from the business key.
func (s *FeeService) List(ctx context.Context) ([]models.Fee, error) {
	fees, err := s.fees.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	s.repairStudentRefs(ctx, fees)
	return fees, nil
}

// ListByStudent returns one student's fees.
func (s *FeeService) ListByStudent(ctx context.Context, studentID string) ([]models.Fee, error) {
	fees, err := s.fees.ListByStudent(ctx, models.NormalizeKey(studentID))
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return fees, nil
}

// TogglePaid flips a fee between pending and paid, stamping or
// clearing the payment time.
func (s *FeeService) TogglePaid(ctx context.Context, id string) (*models.Fee, error) {
	fee, err := s.fees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if fee.Status == models.FeePaid {
		fee.Status = models.FeePending
		fee.PaidAt = nil
	} else {
		fee.Status = models.FeePaid
		paidAt := s.now().UTC()
		fee.PaidAt = &paidAt
	}

	if err := s.fees.Update(ctx, fee); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if s.notify != nil && fee.Status == models.FeePaid {
		s.notify.NotifyStudentProfile(fee.Student, "Fee payment recorded",
			"Your hostel fee for "+fee.Month+" is marked paid")
	}
	s.logger.Infow("fee toggled", "fee_id", fee.ID, "status", fee.Status)
	return fee, nil
}

// Update edits a fee's month, amount or payment state. Moving a fee to
// a month the student is already charged for is rejected.
func (s *FeeService) Update(ctx context.Context, id string, req models.UpdateFeeRequest) (*models.Fee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	fee, err := s.fees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if req.Month != nil && *req.Month != fee.Month {
		exists, err := s.fees.ExistsForMonth(ctx, fee.StudentID, *req.Month)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "fee already charged for this month")
		}
		fee.Month = *req.Month
	}
	if req.Amount != nil {
		fee.Amount = *req.Amount
	}
	if req.Status != nil && *req.Status != fee.Status {
		fee.Status = *req.Status
		if fee.Status == models.FeePaid {
			paidAt := s.now().UTC()
			fee.PaidAt = &paidAt
		} else {
			fee.PaidAt = nil
		}
	}

	if err := s.fees.Update(ctx, fee); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	s.logger.Infow("fee updated", "fee_id", fee.ID, "month", fee.Month, "status", fee.Status)
	return fee, nil
}

// Delete removes a fee record.
func (s *FeeService) Delete(ctx context.Context, id string) error {
	if err := s.fees.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return nil
}

// repairStudentRefs backfills fee records whose student document
// reference is missing. Repairs are best-effort and failures are only
// logged.
func (s *FeeService) repairStudentRefs(ctx context.Context, fees []models.Fee) {
	for i := range fees {
		if fees[i].Student != "" || fees[i].StudentID == "" {
			continue
		}
		student, err := s.students.GetByStudentID(ctx, fees[i].StudentID)
		if err != nil {
			continue
		}
		fees[i].Student = student.ID
		if err := s.fees.Update(ctx, &fees[i]); err != nil {
			s.logger.Warnw("fee reference repair failed", "fee_id", fees[i].ID, "error", err)
		}
	}
}

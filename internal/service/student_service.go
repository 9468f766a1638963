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

type studentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	List(ctx context.Context) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type studentRoomCascadeRepository interface {
	RenameOccupant(ctx context.Context, oldStudentID, newStudentID string) error
	RemoveOccupantEverywhere(ctx context.Context, studentID string) error
}

type studentUserRepository interface {
	DeleteByStudentProfile(ctx context.Context, profileID string) error
}

// occupancyManager centralises room/student occupancy mutation.
type occupancyManager interface {
	AssignStudentToRoom(ctx context.Context, student *models.Student, roomID string) error
	ClearStudentRoom(ctx context.Context, student *models.Student) error
}

// StudentService manages student profiles. All room membership changes
// go through the occupancy manager, and business keys are normalized
// to uppercase before comparison or storage.
type StudentService struct {
	students  studentRepository
	rooms     studentRoomCascadeRepository
	users     studentUserRepository
	occupancy occupancyManager
	validate  *validator.Validate
	logger    *zap.SugaredLogger
}

// NewStudentService builds a StudentService.
func NewStudentService(students studentRepository, rooms studentRoomCascadeRepository, users studentUserRepository, occupancy occupancyManager, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		students:  students,
		rooms:     rooms,
		users:     users,
		occupancy: occupancy,
		validate:  validate,
		logger:    logger.Sugar(),
	}
}

// Create registers a student profile, optionally assigning a room.
func (s *StudentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	studentID := models.NormalizeKey(req.StudentID)
	taken, err := s.students.ExistsByStudentID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already exists")
	}

	student := &models.Student{
		ID:              uuid.NewString(),
		StudentID:       studentID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		ProfilePhotoURL: req.ProfilePhotoURL,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if req.Room != nil && *req.Room != "" {
		if err := s.occupancy.AssignStudentToRoom(ctx, student, *req.Room); err != nil {
			// Profile is kept; the caller can retry assignment.
			s.logger.Warnw("room assignment failed on create", "student_id", student.StudentID, "room_id", *req.Room, "error", err)
			return nil, err
		}
	}

	s.logger.Infow("student created", "student_id", student.StudentID)
	return student, nil
}

// List returns all students ordered by business key.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return students, nil
}

// Get fetches one student by document ID.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return student, nil
}

// GetByStudentID fetches one student by business key.
func (s *StudentService) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.students.GetByStudentID(ctx, models.NormalizeKey(studentID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return student, nil
}

// Update mutates a student profile. Changing the business key cascades
// to room occupant lists; room changes route through the occupancy
// manager.
func (s *StudentService) Update(ctx context.Context, id string, req models.UpdateStudentRequest) (*models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	oldStudentID := student.StudentID
	if req.StudentID != nil {
		newStudentID := models.NormalizeKey(*req.StudentID)
		if newStudentID != student.StudentID {
			taken, err := s.students.ExistsByStudentID(ctx, newStudentID)
			if err != nil {
				return nil, appErrors.Wrap(appErrors.ErrInternal, err)
			}
			if taken {
				return nil, appErrors.Clone(appErrors.ErrConflict, "student already exists")
			}
			student.StudentID = newStudentID
		}
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.ProfilePhotoURL != nil {
		student.ProfilePhotoURL = *req.ProfilePhotoURL
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if student.StudentID != oldStudentID {
		if err := s.rooms.RenameOccupant(ctx, oldStudentID, student.StudentID); err != nil {
			return nil, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		s.logger.Infow("student renamed", "old_student_id", oldStudentID, "new_student_id", student.StudentID)
	}

	switch {
	case req.ClearRoom:
		if err := s.occupancy.ClearStudentRoom(ctx, student); err != nil {
			return nil, err
		}
	case req.Room != nil && *req.Room != "":
		if err := s.occupancy.AssignStudentToRoom(ctx, student, *req.Room); err != nil {
			return nil, err
		}
	}

	return student, nil
}

// UpdateProfile applies the self-service contact fields a student may
// change on their own profile.
func (s *StudentService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.ProfilePhotoURL != nil {
		student.ProfilePhotoURL = *req.ProfilePhotoURL
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return student, nil
}

// Delete removes a student, detaching them from their room, sweeping
// any stale occupant entries and deleting any linked login account.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if err := s.occupancy.ClearStudentRoom(ctx, student); err != nil {
		return err
	}
	// Occupant lists can drift from the student's room reference; sweep
	// the business key out of every room, not just the recorded one.
	if err := s.rooms.RemoveOccupantEverywhere(ctx, student.StudentID); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if err := s.users.DeleteByStudentProfile(ctx, student.ID); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if err := s.students.Delete(ctx, id); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}

	s.logger.Infow("student deleted", "student_id", student.StudentID)
	return nil
}

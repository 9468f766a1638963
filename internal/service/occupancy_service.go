package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type occupancyRoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id string) (*models.Room, error)
	GetByRoomID(ctx context.Context, roomID string) (*models.Room, error)
	ExistsByRoomID(ctx context.Context, roomID string) (bool, error)
	List(ctx context.Context) ([]models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
	AddOccupant(ctx context.Context, roomID, studentID string) error
	RemoveOccupant(ctx context.Context, roomID, studentID string) error
}

type occupancyStudentRepository interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateRoomRefs(ctx context.Context, oldRoomID, newRoomID string) error
	ClearRoomRefs(ctx context.Context, roomID string) error
}

type occupancyRequestRepository interface {
	Create(ctx context.Context, req *models.RoomRequest) error
	GetByID(ctx context.Context, id string) (*models.RoomRequest, error)
	List(ctx context.Context) ([]models.RoomRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.RoomRequest, error)
	ExistsPending(ctx context.Context, studentID, roomID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status models.RoomRequestStatus, adminRemark string) error
	Delete(ctx context.Context, id string) error
}

// notifier delivers fire-and-forget notifications. Failures never
// propagate to the caller.
type notifier interface {
	NotifyStudentProfile(profileID, title, message string)
	NotifyRole(role models.UserRole, title, message string)
}

// OccupancyService owns rooms, room allocation requests and every
// mutation of the room/student occupancy relationship. Keeping the
// dual-write in one place keeps occupant lists and student room
// references in sync. All business keys are normalized to uppercase
// before comparison or storage.
type OccupancyService struct {
	rooms    occupancyRoomRepository
	students occupancyStudentRepository
	requests occupancyRequestRepository
	notify   notifier
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewOccupancyService builds an OccupancyService.
func NewOccupancyService(rooms occupancyRoomRepository, students occupancyStudentRepository, requests occupancyRequestRepository, notify notifier, validate *validator.Validate, logger *zap.Logger) *OccupancyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyService{
		rooms:    rooms,
		students: students,
		requests: requests,
		notify:   notify,
		validate: validate,
		logger:   logger.Sugar(),
	}
}

// CreateRoom registers a new room with an empty occupant list.
func (s *OccupancyService) CreateRoom(ctx context.Context, req models.CreateRoomRequest) (*models.RoomView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	roomID := models.NormalizeKey(req.RoomID)
	taken, err := s.rooms.ExistsByRoomID(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "room already exists")
	}

	room := &models.Room{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		Capacity:    req.Capacity,
		Occupants:   []string{},
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	s.logger.Infow("room created", "room_id", room.RoomID, "capacity", room.Capacity)
	view := room.View()
	return &view, nil
}

// ListRooms returns every room with derived status.
func (s *OccupancyService) ListRooms(ctx context.Context) ([]models.RoomView, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	views := make([]models.RoomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, room.View())
	}
	return views, nil
}

// GetRoom fetches one room by document ID.
func (s *OccupancyService) GetRoom(ctx context.Context, id string) (*models.RoomView, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	view := room.View()
	return &view, nil
}

// UpdateRoom mutates a room. Renaming the business key cascades to
// every assigned student; shrinking capacity below the current occupant
// count is rejected.
func (s *OccupancyService) UpdateRoom(ctx context.Context, id string, req models.UpdateRoomRequest) (*models.RoomView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	oldRoomID := room.RoomID
	if req.RoomID != nil {
		newRoomID := models.NormalizeKey(*req.RoomID)
		if newRoomID != room.RoomID {
			taken, err := s.rooms.ExistsByRoomID(ctx, newRoomID)
			if err != nil {
				return nil, appErrors.Wrap(appErrors.ErrInternal, err)
			}
			if taken {
				return nil, appErrors.Clone(appErrors.ErrConflict, "room already exists")
			}
			room.RoomID = newRoomID
		}
	}
	if req.ImageURL != nil {
		room.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity < len(room.Occupants) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCapacity,
				fmt.Sprintf("capacity %d is below current occupancy %d", *req.Capacity, len(room.Occupants)))
		}
		room.Capacity = *req.Capacity
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if room.RoomID != oldRoomID {
		if err := s.students.UpdateRoomRefs(ctx, oldRoomID, room.RoomID); err != nil {
			return nil, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		s.logger.Infow("room renamed", "old_room_id", oldRoomID, "new_room_id", room.RoomID)
	}

	view := room.View()
	return &view, nil
}

// DeleteRoom removes a room and detaches every assigned student.
func (s *OccupancyService) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if err := s.students.ClearRoomRefs(ctx, room.RoomID); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}

	s.logger.Infow("room deleted", "room_id", room.RoomID, "detached", len(room.Occupants))
	return nil
}

// AssignStudentToRoom places a student in the room with business key
// roomID. The student is first removed from their current room. The
// capacity check reads then writes without a transaction, matching the
// single-writer deployment this system targets.
func (s *OccupancyService) AssignStudentToRoom(ctx context.Context, student *models.Student, roomID string) error {
	room, err := s.rooms.GetByRoomID(ctx, models.NormalizeKey(roomID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if student.Room != nil && *student.Room == room.RoomID {
		return nil
	}

	occupied := len(room.Occupants)
	for _, occupant := range room.Occupants {
		if occupant == student.StudentID {
			occupied--
		}
	}
	if occupied >= room.Capacity {
		return appErrors.Clone(appErrors.ErrCapacityExceeded, "room is at full capacity")
	}

	if student.Room != nil {
		if err := s.rooms.RemoveOccupant(ctx, *student.Room, student.StudentID); err != nil {
			return appErrors.Wrap(appErrors.ErrInternal, err)
		}
	}
	if err := s.rooms.AddOccupant(ctx, room.RoomID, student.StudentID); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}

	assigned := room.RoomID
	student.Room = &assigned
	if err := s.students.Update(ctx, student); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}

	s.logger.Infow("student assigned to room", "student_id", student.StudentID, "room_id", room.RoomID)
	return nil
}

// ClearStudentRoom detaches a student from their current room, if any.
func (s *OccupancyService) ClearStudentRoom(ctx context.Context, student *models.Student) error {
	if student.Room == nil {
		return nil
	}
	if err := s.rooms.RemoveOccupant(ctx, *student.Room, student.StudentID); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	student.Room = nil
	if err := s.students.Update(ctx, student); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return nil
}

// SubmitRequest files a room allocation request for a student. At most
// one pending request per student and target room is allowed, and
// requesting the room the student already lives in is rejected.
func (s *OccupancyService) SubmitRequest(ctx context.Context, studentID string, req models.CreateRoomRequestRequest) (*models.RoomRequest, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	studentID = models.NormalizeKey(studentID)
	roomID := models.NormalizeKey(req.RoomID)

	exists, err := s.rooms.ExistsByRoomID(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}

	student, err := s.students.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if student.Room != nil && *student.Room == roomID {
		return nil, appErrors.Clone(appErrors.ErrConflict, "already assigned to this room")
	}

	pending, err := s.requests.ExistsPending(ctx, studentID, roomID)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if pending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a pending request for this room already exists")
	}

	request := &models.RoomRequest{
		ID:        uuid.NewString(),
		StudentID: studentID,
		RoomID:    roomID,
		Status:    models.RoomRequestPending,
		Note:      req.Note,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if s.notify != nil {
		s.notify.NotifyRole(models.RoleAdmin, "New room request",
			fmt.Sprintf("Student %s requested room %s", studentID, roomID))
	}
	return request, nil
}

// ListRequests returns every room request, newest first.
func (s *OccupancyService) ListRequests(ctx context.Context) ([]models.RoomRequest, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return requests, nil
}

// ListRequestsByStudent returns one student's room requests.
func (s *OccupancyService) ListRequestsByStudent(ctx context.Context, studentID string) ([]models.RoomRequest, error) {
	requests, err := s.requests.ListByStudent(ctx, models.NormalizeKey(studentID))
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return requests, nil
}

// ApproveRequest assigns the requested room and marks the request
// approved. Requests already decided are rejected with a client error.
// The optional admin remark is stored and relayed to the student.
func (s *OccupancyService) ApproveRequest(ctx context.Context, requestID, adminRemark string) (*models.RoomRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room request not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if request.Status != models.RoomRequestPending {
		return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "room request already processed")
	}

	student, err := s.students.GetByStudentID(ctx, request.StudentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if err := s.AssignStudentToRoom(ctx, student, request.RoomID); err != nil {
		return nil, err
	}
	if err := s.requests.UpdateStatus(ctx, requestID, models.RoomRequestApproved, adminRemark); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	request.Status = models.RoomRequestApproved
	request.AdminRemark = adminRemark

	if s.notify != nil {
		message := fmt.Sprintf("You have been assigned to room %s", request.RoomID)
		if adminRemark != "" {
			message += ": " + adminRemark
		}
		s.notify.NotifyStudentProfile(student.ID, "Room request approved", message)
	}
	s.logger.Infow("room request approved", "request_id", requestID, "student_id", request.StudentID, "room_id", request.RoomID)
	return request, nil
}

// RejectRequest marks a pending request rejected, storing the optional
// admin remark.
func (s *OccupancyService) RejectRequest(ctx context.Context, requestID, adminRemark string) (*models.RoomRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room request not found")
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if request.Status != models.RoomRequestPending {
		return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "room request already processed")
	}

	if err := s.requests.UpdateStatus(ctx, requestID, models.RoomRequestRejected, adminRemark); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	request.Status = models.RoomRequestRejected
	request.AdminRemark = adminRemark

	student, err := s.students.GetByStudentID(ctx, request.StudentID)
	if err == nil && s.notify != nil {
		message := fmt.Sprintf("Your request for room %s was rejected", request.RoomID)
		if adminRemark != "" {
			message += ": " + adminRemark
		}
		s.notify.NotifyStudentProfile(student.ID, "Room request rejected", message)
	}
	s.logger.Infow("room request rejected", "request_id", requestID, "student_id", request.StudentID)
	return request, nil
}

// CancelRequest lets a student withdraw their own pending request.
func (s *OccupancyService) CancelRequest(ctx context.Context, studentID, requestID string) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "room request not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if request.StudentID != models.NormalizeKey(studentID) {
		return appErrors.Clone(appErrors.ErrForbidden, "request belongs to another student")
	}
	if request.Status != models.RoomRequestPending {
		return appErrors.Clone(appErrors.ErrAlreadyProcessed, "room request already processed")
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	s.logger.Infow("room request cancelled", "request_id", requestID, "student_id", request.StudentID)
	return nil
}

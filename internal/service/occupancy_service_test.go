package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type fakeRoomRepo struct {
	rooms map[string]*models.Room // keyed by document ID
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[string]*models.Room{}}
}

func (f *fakeRoomRepo) Create(_ context.Context, room *models.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id string) (*models.Room, error) {
	if room, ok := f.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoomRepo) GetByRoomID(_ context.Context, roomID string) (*models.Room, error) {
	for _, room := range f.rooms {
		if room.RoomID == roomID {
			copied := *room
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoomRepo) ExistsByRoomID(ctx context.Context, roomID string) (bool, error) {
	_, err := f.GetByRoomID(ctx, roomID)
	return err == nil, nil
}

func (f *fakeRoomRepo) List(_ context.Context) ([]models.Room, error) {
	out := []models.Room{}
	for _, room := range f.rooms {
		out = append(out, *room)
	}
	return out, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, room *models.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rooms[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepo) AddOccupant(_ context.Context, roomID, studentID string) error {
	for _, room := range f.rooms {
		if room.RoomID == roomID {
			for _, occ := range room.Occupants {
				if occ == studentID {
					return nil
				}
			}
			room.Occupants = append(room.Occupants, studentID)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeRoomRepo) RemoveOccupant(_ context.Context, roomID, studentID string) error {
	for _, room := range f.rooms {
		if room.RoomID == roomID {
			kept := room.Occupants[:0]
			for _, occ := range room.Occupants {
				if occ != studentID {
					kept = append(kept, occ)
				}
			}
			room.Occupants = kept
			return nil
		}
	}
	return nil
}

type fakeStudentOccupancyRepo struct {
	students map[string]*models.Student // keyed by business key
}

func newFakeStudentOccupancyRepo() *fakeStudentOccupancyRepo {
	return &fakeStudentOccupancyRepo{students: map[string]*models.Student{}}
}

func (f *fakeStudentOccupancyRepo) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	if student, ok := f.students[studentID]; ok {
		copied := *student
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStudentOccupancyRepo) Update(_ context.Context, student *models.Student) error {
	copied := *student
	f.students[student.StudentID] = &copied
	return nil
}

func (f *fakeStudentOccupancyRepo) UpdateRoomRefs(_ context.Context, oldRoomID, newRoomID string) error {
	for _, student := range f.students {
		if student.Room != nil && *student.Room == oldRoomID {
			renamed := newRoomID
			student.Room = &renamed
		}
	}
	return nil
}

func (f *fakeStudentOccupancyRepo) ClearRoomRefs(_ context.Context, roomID string) error {
	for _, student := range f.students {
		if student.Room != nil && *student.Room == roomID {
			student.Room = nil
		}
	}
	return nil
}

type fakeRequestRepo struct {
	requests map[string]*models.RoomRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*models.RoomRequest{}}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *models.RoomRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*models.RoomRequest, error) {
	if req, ok := f.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRequestRepo) List(_ context.Context) ([]models.RoomRequest, error) {
	out := []models.RoomRequest{}
	for _, req := range f.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByStudent(_ context.Context, studentID string) ([]models.RoomRequest, error) {
	out := []models.RoomRequest{}
	for _, req := range f.requests {
		if req.StudentID == studentID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ExistsPending(_ context.Context, studentID, roomID string) (bool, error) {
	for _, req := range f.requests {
		if req.StudentID == studentID && req.RoomID == roomID && req.Status == models.RoomRequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status models.RoomRequestStatus, adminRemark string) error {
	req, ok := f.requests[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	req.Status = status
	req.AdminRemark = adminRemark
	return nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.requests, id)
	return nil
}

type recordingNotifier struct {
	personal []string
	role     []string
}

func (r *recordingNotifier) NotifyStudentProfile(profileID, title, _ string) {
	r.personal = append(r.personal, profileID+":"+title)
}

func (r *recordingNotifier) NotifyRole(role models.UserRole, title, _ string) {
	r.role = append(r.role, string(role)+":"+title)
}

type occupancyFixture struct {
	svc      *OccupancyService
	rooms    *fakeRoomRepo
	students *fakeStudentOccupancyRepo
	requests *fakeRequestRepo
	notify   *recordingNotifier
}

func newOccupancyFixture() *occupancyFixture {
	rooms := newFakeRoomRepo()
	students := newFakeStudentOccupancyRepo()
	requests := newFakeRequestRepo()
	notify := &recordingNotifier{}
	return &occupancyFixture{
		svc:      NewOccupancyService(rooms, students, requests, notify, nil, nil),
		rooms:    rooms,
		students: students,
		requests: requests,
		notify:   notify,
	}
}

func (f *occupancyFixture) addRoom(id, roomID string, capacity int, occupants ...string) {
	if occupants == nil {
		occupants = []string{}
	}
	f.rooms.rooms[id] = &models.Room{ID: id, RoomID: roomID, Capacity: capacity, Occupants: occupants}
}

func (f *occupancyFixture) addStudent(docID, studentID string, room *string) {
	f.students.students[studentID] = &models.Student{ID: docID, StudentID: studentID, Name: studentID, Room: room}
}

func TestCreateRoomDuplicateKey(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)

	_, err := fx.svc.CreateRoom(context.Background(), models.CreateRoomRequest{RoomID: "A-101", Capacity: 2})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestCreateRoomNormalizesKey(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)

	_, err := fx.svc.CreateRoom(context.Background(), models.CreateRoomRequest{RoomID: " a-101 ", Capacity: 2})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	created, err := fx.svc.CreateRoom(context.Background(), models.CreateRoomRequest{RoomID: "b-202", Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, "B-202", created.RoomID)
}

func TestAssignStudentNormalizesRoomKey(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)
	fx.addStudent("s1", "STU001", nil)

	student, _ := fx.students.GetByStudentID(context.Background(), "STU001")
	require.NoError(t, fx.svc.AssignStudentToRoom(context.Background(), student, "a-101"))

	room, err := fx.rooms.GetByRoomID(context.Background(), "A-101")
	require.NoError(t, err)
	assert.Contains(t, room.Occupants, "STU001")
}

func TestAssignStudentDualWrite(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)
	fx.addStudent("s1", "STU001", nil)

	student, _ := fx.students.GetByStudentID(context.Background(), "STU001")
	require.NoError(t, fx.svc.AssignStudentToRoom(context.Background(), student, "A-101"))

	room, err := fx.rooms.GetByRoomID(context.Background(), "A-101")
	require.NoError(t, err)
	assert.Contains(t, room.Occupants, "STU001")

	stored, err := fx.students.GetByStudentID(context.Background(), "STU001")
	require.NoError(t, err)
	require.NotNil(t, stored.Room)
	assert.Equal(t, "A-101", *stored.Room)
}

func TestAssignStudentFullRoomNoMutation(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 1, "STU000")
	fx.addStudent("s1", "STU001", nil)

	student, _ := fx.students.GetByStudentID(context.Background(), "STU001")
	err := fx.svc.AssignStudentToRoom(context.Background(), student, "A-101")
	assert.ErrorIs(t, err, appErrors.ErrCapacityExceeded)

	room, _ := fx.rooms.GetByRoomID(context.Background(), "A-101")
	assert.Equal(t, []string{"STU000"}, room.Occupants)
	stored, _ := fx.students.GetByStudentID(context.Background(), "STU001")
	assert.Nil(t, stored.Room)
}

func TestAssignStudentMovesBetweenRooms(t *testing.T) {
	fx := newOccupancyFixture()
	oldRoom := "A-101"
	fx.addRoom("r1", "A-101", 2, "STU001")
	fx.addRoom("r2", "B-202", 2)
	fx.addStudent("s1", "STU001", &oldRoom)

	student, _ := fx.students.GetByStudentID(context.Background(), "STU001")
	require.NoError(t, fx.svc.AssignStudentToRoom(context.Background(), student, "B-202"))

	from, _ := fx.rooms.GetByRoomID(context.Background(), "A-101")
	to, _ := fx.rooms.GetByRoomID(context.Background(), "B-202")
	assert.Empty(t, from.Occupants)
	assert.Contains(t, to.Occupants, "STU001")
}

func TestUpdateRoomRenameCascades(t *testing.T) {
	fx := newOccupancyFixture()
	assigned := "A-101"
	fx.addRoom("r1", "A-101", 2, "STU001")
	fx.addStudent("s1", "STU001", &assigned)

	newID := "C-303"
	_, err := fx.svc.UpdateRoom(context.Background(), "r1", models.UpdateRoomRequest{RoomID: &newID})
	require.NoError(t, err)

	stored, _ := fx.students.GetByStudentID(context.Background(), "STU001")
	require.NotNil(t, stored.Room)
	assert.Equal(t, "C-303", *stored.Room)
}

func TestUpdateRoomCapacityBelowOccupancy(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 3, "STU001", "STU002")

	capacity := 1
	_, err := fx.svc.UpdateRoom(context.Background(), "r1", models.UpdateRoomRequest{Capacity: &capacity})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCapacity)
}

func TestDeleteRoomDetachesStudents(t *testing.T) {
	fx := newOccupancyFixture()
	assigned := "A-101"
	fx.addRoom("r1", "A-101", 2, "STU001")
	fx.addStudent("s1", "STU001", &assigned)

	require.NoError(t, fx.svc.DeleteRoom(context.Background(), "r1"))

	_, err := fx.rooms.GetByRoomID(context.Background(), "A-101")
	assert.Error(t, err)
	stored, _ := fx.students.GetByStudentID(context.Background(), "STU001")
	assert.Nil(t, stored.Room)
}

func TestSubmitRequestDuplicatePending(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)
	fx.addStudent("s1", "STU001", nil)
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestPending,
	}

	_, err := fx.svc.SubmitRequest(context.Background(), "STU001", models.CreateRoomRequestRequest{RoomID: "A-101"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestSubmitRequestDifferentRoomAllowed(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)
	fx.addRoom("r2", "B-202", 2)
	fx.addStudent("s1", "STU001", nil)
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestPending,
	}

	request, err := fx.svc.SubmitRequest(context.Background(), "STU001", models.CreateRoomRequestRequest{RoomID: "B-202"})
	require.NoError(t, err)
	assert.Equal(t, "B-202", request.RoomID)
}

func TestSubmitRequestForCurrentRoom(t *testing.T) {
	fx := newOccupancyFixture()
	assigned := "A-101"
	fx.addRoom("r1", "A-101", 2, "STU001")
	fx.addStudent("s1", "STU001", &assigned)

	_, err := fx.svc.SubmitRequest(context.Background(), "STU001", models.CreateRoomRequestRequest{RoomID: "A-101"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestApproveRequestAssignsAndNotifies(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)
	fx.addStudent("s1", "STU001", nil)
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestPending,
	}

	request, err := fx.svc.ApproveRequest(context.Background(), "q1", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoomRequestApproved, request.Status)

	room, _ := fx.rooms.GetByRoomID(context.Background(), "A-101")
	assert.Contains(t, room.Occupants, "STU001")
	assert.Contains(t, fx.notify.personal, "s1:Room request approved")
}

func TestRejectRequestStoresRemark(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)
	fx.addStudent("s1", "STU001", nil)
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestPending,
	}

	request, err := fx.svc.RejectRequest(context.Background(), "q1", "room under maintenance")
	require.NoError(t, err)
	assert.Equal(t, "room under maintenance", request.AdminRemark)
	assert.Equal(t, "room under maintenance", fx.requests.requests["q1"].AdminRemark)
}

func TestApproveRequestAlreadyProcessed(t *testing.T) {
	fx := newOccupancyFixture()
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestApproved,
	}

	_, err := fx.svc.ApproveRequest(context.Background(), "q1", "")
	assert.ErrorIs(t, err, appErrors.ErrAlreadyProcessed)
}

func TestRejectRequestKeepsOccupancy(t *testing.T) {
	fx := newOccupancyFixture()
	fx.addRoom("r1", "A-101", 2)
	fx.addStudent("s1", "STU001", nil)
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestPending,
	}

	request, err := fx.svc.RejectRequest(context.Background(), "q1", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoomRequestRejected, request.Status)

	room, _ := fx.rooms.GetByRoomID(context.Background(), "A-101")
	assert.Empty(t, room.Occupants)
}

func TestCancelRequestDeletesPending(t *testing.T) {
	fx := newOccupancyFixture()
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestPending,
	}

	require.NoError(t, fx.svc.CancelRequest(context.Background(), "STU001", "q1"))
	assert.Empty(t, fx.requests.requests)
}

func TestCancelRequestOwnershipEnforced(t *testing.T) {
	fx := newOccupancyFixture()
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestPending,
	}

	err := fx.svc.CancelRequest(context.Background(), "STU002", "q1")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Len(t, fx.requests.requests, 1)
}

func TestCancelRequestAlreadyProcessed(t *testing.T) {
	fx := newOccupancyFixture()
	fx.requests.requests["q1"] = &models.RoomRequest{
		ID: "q1", StudentID: "STU001", RoomID: "A-101", Status: models.RoomRequestApproved,
	}

	err := fx.svc.CancelRequest(context.Background(), "STU001", "q1")
	assert.ErrorIs(t, err, appErrors.ErrAlreadyProcessed)
}

func TestRoomStatusDerivation(t *testing.T) {
	room := models.Room{Capacity: 2, Occupants: []string{}}
	assert.Equal(t, models.RoomStatusEmpty, room.Status())

	room.Occupants = []string{"STU001"}
	assert.Equal(t, models.RoomStatusPartial, room.Status())

	room.Occupants = []string{"STU001", "STU002"}
	assert.Equal(t, models.RoomStatusFull, room.Status())
}

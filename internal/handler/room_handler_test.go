package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
)

type fakeRoomStore struct {
	rooms map[string]*models.Room
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: map[string]*models.Room{}}
}

func (f *fakeRoomStore) Create(_ context.Context, room *models.Room) error {
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomStore) GetByID(_ context.Context, id string) (*models.Room, error) {
	if room, ok := f.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoomStore) GetByRoomID(_ context.Context, roomID string) (*models.Room, error) {
	for _, room := range f.rooms {
		if room.RoomID == roomID {
			copied := *room
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoomStore) ExistsByRoomID(_ context.Context, roomID string) (bool, error) {
	for _, room := range f.rooms {
		if room.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoomStore) List(_ context.Context) ([]models.Room, error) {
	out := []models.Room{}
	for _, room := range f.rooms {
		out = append(out, *room)
	}
	return out, nil
}

func (f *fakeRoomStore) Update(_ context.Context, room *models.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomStore) Delete(_ context.Context, id string) error {
	if _, ok := f.rooms[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomStore) AddOccupant(_ context.Context, roomID, studentID string) error {
	for _, room := range f.rooms {
		if room.RoomID == roomID {
			room.Occupants = append(room.Occupants, studentID)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeRoomStore) RemoveOccupant(_ context.Context, roomID, studentID string) error {
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
	return mongo.ErrNoDocuments
}

type noopStudentStore struct{}

func (noopStudentStore) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	return nil, mongo.ErrNoDocuments
}
func (noopStudentStore) Update(context.Context, *models.Student) error         { return nil }
func (noopStudentStore) UpdateRoomRefs(_ context.Context, _, _ string) error   { return nil }
func (noopStudentStore) ClearRoomRefs(_ context.Context, _ string) error       { return nil }

type noopRequestStore struct{}

func (noopRequestStore) Create(context.Context, *models.RoomRequest) error { return nil }
func (noopRequestStore) GetByID(context.Context, string) (*models.RoomRequest, error) {
	return nil, mongo.ErrNoDocuments
}
func (noopRequestStore) List(context.Context) ([]models.RoomRequest, error) { return nil, nil }
func (noopRequestStore) ListByStudent(context.Context, string) ([]models.RoomRequest, error) {
	return nil, nil
}
func (noopRequestStore) ExistsPending(context.Context, string, string) (bool, error) {
	return false, nil
}
func (noopRequestStore) UpdateStatus(context.Context, string, models.RoomRequestStatus, string) error {
	return nil
}
func (noopRequestStore) Delete(context.Context, string) error { return nil }

func newRoomRouter(store *fakeRoomStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	occupancy := service.NewOccupancyService(store, noopStudentStore{}, noopRequestStore{}, nil, nil, nil)
	h := NewRoomHandler(occupancy)

	router := gin.New()
	router.POST("/rooms", h.Create)
	router.GET("/rooms", h.List)
	router.GET("/rooms/:id", h.Get)
	router.PUT("/rooms/:id", h.Update)
	router.DELETE("/rooms/:id", h.Delete)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateRoomReturnsCreated(t *testing.T) {
	router := newRoomRouter(newFakeRoomStore())

	rec := doJSON(t, router, http.MethodPost, "/rooms", `{"roomId":"A-101","capacity":2,"description":"ground floor twin"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data models.RoomView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "A-101", envelope.Data.RoomID)
	assert.Equal(t, models.RoomStatusEmpty, envelope.Data.Status)
}

func TestCreateRoomDuplicateReturnsBadRequest(t *testing.T) {
	router := newRoomRouter(newFakeRoomStore())

	rec := doJSON(t, router, http.MethodPost, "/rooms", `{"roomId":"A-101","capacity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/rooms", `{"roomId":"a-101","capacity":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "room already exists")
}

func TestCreateRoomInvalidPayload(t *testing.T) {
	router := newRoomRouter(newFakeRoomStore())

	rec := doJSON(t, router, http.MethodPost, "/rooms", `{"description":"no key"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoomNotFound(t *testing.T) {
	router := newRoomRouter(newFakeRoomStore())

	rec := doJSON(t, router, http.MethodGet, "/rooms/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRoomReturnsMessage(t *testing.T) {
	store := newFakeRoomStore()
	store.rooms["r1"] = &models.Room{ID: "r1", RoomID: "A-101", Capacity: 2, Occupants: []string{}}
	router := newRoomRouter(store)

	rec := doJSON(t, router, http.MethodDelete, "/rooms/r1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "room deleted")
	assert.Empty(t, store.rooms)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/response"
)

// RoomHandler exposes room management endpoints.
type RoomHandler struct {
	occupancy *service.OccupancyService
}

// NewRoomHandler builds a RoomHandler.
func NewRoomHandler(occupancy *service.OccupancyService) *RoomHandler {
	return &RoomHandler{occupancy: occupancy}
}

// Create godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body models.CreateRoomRequest true "Room"
// @Success 201 {object} models.RoomView
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	room, err := h.occupancy.CreateRoom(c, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// List godoc
// @Summary List rooms with occupancy status
// @Tags rooms
// @Produce json
// @Success 200 {array} models.RoomView
// @Security BearerAuth
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.occupancy.ListRooms(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms)
}

// Get godoc
// @Summary Fetch a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room document ID"
// @Success 200 {object} models.RoomView
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.occupancy.GetRoom(c, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// Update godoc
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room document ID"
// @Param request body models.UpdateRoomRequest true "Changes"
// @Success 200 {object} models.RoomView
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	var req models.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	room, err := h.occupancy.UpdateRoom(c, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// Delete godoc
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room document ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.occupancy.DeleteRoom(c, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "room deleted")
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/response"
)

// RoomRequestHandler exposes room allocation request endpoints.
type RoomRequestHandler struct {
	occupancy *service.OccupancyService
	students  *service.StudentService
}

// NewRoomRequestHandler builds a RoomRequestHandler.
func NewRoomRequestHandler(occupancy *service.OccupancyService, students *service.StudentService) *RoomRequestHandler {
	return &RoomRequestHandler{occupancy: occupancy, students: students}
}

// Submit godoc
// @Summary Request a room assignment
// @Tags room-requests
// @Accept json
// @Produce json
// @Param request body models.CreateRoomRequestRequest true "Request"
// @Success 201 {object} models.RoomRequest
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /room-requests [post]
func (h *RoomRequestHandler) Submit(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.CreateRoomRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	request, err := h.occupancy.SubmitRequest(c, student.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// List godoc
// @Summary List all room requests
// @Tags room-requests
// @Produce json
// @Success 200 {array} models.RoomRequest
// @Security BearerAuth
// @Router /room-requests [get]
func (h *RoomRequestHandler) List(c *gin.Context) {
	requests, err := h.occupancy.ListRequests(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// Mine godoc
// @Summary List the caller's room requests
// @Tags room-requests
// @Produce json
// @Success 200 {array} models.RoomRequest
// @Security BearerAuth
// @Router /room-requests/mine [get]
func (h *RoomRequestHandler) Mine(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	requests, err := h.occupancy.ListRequestsByStudent(c, student.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// decision reads the optional admin remark body. An empty body means
// no remark.
func decision(c *gin.Context) models.DecideRoomRequestRequest {
	var req models.DecideRoomRequestRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}
	return req
}

// Approve godoc
// @Summary Approve a room request
// @Tags room-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body models.DecideRoomRequestRequest false "Remark"
// @Success 200 {object} models.RoomRequest
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /room-requests/{id}/approve [put]
func (h *RoomRequestHandler) Approve(c *gin.Context) {
	req := decision(c)
	request, err := h.occupancy.ApproveRequest(c, c.Param("id"), req.AdminRemark)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// Reject godoc
// @Summary Reject a room request
// @Tags room-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body models.DecideRoomRequestRequest false "Remark"
// @Success 200 {object} models.RoomRequest
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /room-requests/{id}/reject [put]
func (h *RoomRequestHandler) Reject(c *gin.Context) {
	req := decision(c)
	request, err := h.occupancy.RejectRequest(c, c.Param("id"), req.AdminRemark)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// Cancel godoc
// @Summary Withdraw one of the caller's pending room requests
// @Tags room-requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /room-requests/{id} [delete]
func (h *RoomRequestHandler) Cancel(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.occupancy.CancelRequest(c, student.StudentID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "room request cancelled")
}

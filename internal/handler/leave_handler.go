package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/response"
)

// LeaveHandler exposes leave application endpoints.
type LeaveHandler struct {
	leaves   *service.LeaveService
	students *service.StudentService
}

// NewLeaveHandler builds a LeaveHandler.
func NewLeaveHandler(leaves *service.LeaveService, students *service.StudentService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves, students: students}
}

// Apply godoc
// @Summary Apply for leave
// @Tags leaves
// @Accept json
// @Produce json
// @Param request body models.CreateLeaveRequest true "Leave application"
// @Success 201 {object} models.Leave
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /leaves [post]
func (h *LeaveHandler) Apply(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	leave, err := h.leaves.Apply(c, student.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, leave)
}

// List godoc
// @Summary List all leave applications
// @Tags leaves
// @Produce json
// @Success 200 {array} models.Leave
// @Security BearerAuth
// @Router /leaves [get]
func (h *LeaveHandler) List(c *gin.Context) {
	leaves, err := h.leaves.List(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leaves)
}

// Mine godoc
// @Summary List the caller's leave applications
// @Tags leaves
// @Produce json
// @Success 200 {array} models.Leave
// @Security BearerAuth
// @Router /leaves/mine [get]
func (h *LeaveHandler) Mine(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	leaves, err := h.leaves.ListByStudent(c, student.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leaves)
}

// Approve godoc
// @Summary Approve a leave application
// @Tags leaves
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} models.Leave
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /leaves/{id}/approve [put]
func (h *LeaveHandler) Approve(c *gin.Context) {
	leave, err := h.leaves.Decide(c, c.Param("id"), models.LeaveApproved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leave)
}

// Reject godoc
// @Summary Reject a leave application
// @Tags leaves
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} models.Leave
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /leaves/{id}/reject [put]
func (h *LeaveHandler) Reject(c *gin.Context) {
	leave, err := h.leaves.Decide(c, c.Param("id"), models.LeaveRejected)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leave)
}

// Delete godoc
// @Summary Delete a leave application
// @Tags leaves
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /leaves/{id} [delete]
func (h *LeaveHandler) Delete(c *gin.Context) {
	if err := h.leaves.Delete(c, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "leave deleted")
}

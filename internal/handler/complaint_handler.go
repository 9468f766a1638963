package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/response"
)

// ComplaintHandler exposes complaint endpoints.
type ComplaintHandler struct {
	complaints *service.ComplaintService
	students   *service.StudentService
}

// NewComplaintHandler builds a ComplaintHandler.
func NewComplaintHandler(complaints *service.ComplaintService, students *service.StudentService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints, students: students}
}

// Create godoc
// @Summary File a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body models.CreateComplaintRequest true "Complaint"
// @Success 201 {object} models.Complaint
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	complaint, err := h.complaints.Create(c, student.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, complaint)
}

// List godoc
// @Summary List all complaints
// @Tags complaints
// @Produce json
// @Success 200 {array} models.Complaint
// @Security BearerAuth
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	complaints, err := h.complaints.List(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaints)
}

// Mine godoc
// @Summary List the caller's complaints
// @Tags complaints
// @Produce json
// @Success 200 {array} models.Complaint
// @Security BearerAuth
// @Router /complaints/mine [get]
func (h *ComplaintHandler) Mine(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	complaints, err := h.complaints.ListByStudent(c, student.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaints)
}

// Resolve godoc
// @Summary Resolve a complaint
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} models.Complaint
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /complaints/{id}/resolve [put]
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	complaint, err := h.complaints.Resolve(c, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaint)
}

// Delete godoc
// @Summary Delete a complaint
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) Delete(c *gin.Context) {
	if err := h.complaints.Delete(c, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "complaint deleted")
}

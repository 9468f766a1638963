package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/response"
)

// FeeHandler exposes fee management endpoints.
type FeeHandler struct {
	fees     *service.FeeService
	students *service.StudentService
}

// NewFeeHandler builds a FeeHandler.
func NewFeeHandler(fees *service.FeeService, students *service.StudentService) *FeeHandler {
	return &FeeHandler{fees: fees, students: students}
}

// Create godoc
// @Summary Charge a student for a month
// @Tags fees
// @Accept json
// @Produce json
// @Param request body models.CreateFeeRequest true "Fee"
// @Success 201 {object} models.Fee
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req models.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	fee, err := h.fees.Create(c, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fee)
}

// Generate godoc
// @Summary Generate monthly fees for all students
// @Tags fees
// @Accept json
// @Produce json
// @Param request body models.GenerateFeesRequest true "Generation"
// @Success 200 {object} map[string]int
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /fees/generate [post]
func (h *FeeHandler) Generate(c *gin.Context) {
	var req models.GenerateFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	created, err := h.fees.GenerateMonthly(c, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"created": created})
}

// List godoc
// @Summary List all fees
// @Tags fees
// @Produce json
// @Success 200 {array} models.Fee
// @Security BearerAuth
// @Router /fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	fees, err := h.fees.List(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}

// Mine godoc
// @Summary List the caller's fees
// @Tags fees
// @Produce json
// @Success 200 {array} models.Fee
// @Security BearerAuth
// @Router /fees/mine [get]
func (h *FeeHandler) Mine(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	fees, err := h.fees.ListByStudent(c, student.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}

// Update godoc
// @Summary Edit a fee record
// @Tags fees
// @Accept json
// @Produce json
// @Param id path string true "Fee ID"
// @Param request body models.UpdateFeeRequest true "Changes"
// @Success 200 {object} models.Fee
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /fees/{id} [put]
func (h *FeeHandler) Update(c *gin.Context) {
	var req models.UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	fee, err := h.fees.Update(c, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee)
}

// Toggle godoc
// @Summary Toggle a fee between paid and pending
// @Tags fees
// @Produce json
// @Param id path string true "Fee ID"
// @Success 200 {object} models.Fee
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /fees/{id}/toggle [put]
func (h *FeeHandler) Toggle(c *gin.Context) {
	fee, err := h.fees.TogglePaid(c, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee)
}

// Delete godoc
// @Summary Delete a fee record
// @Tags fees
// @Produce json
// @Param id path string true "Fee ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /fees/{id} [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	if err := h.fees.Delete(c, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "fee deleted")
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/service"
	"github.com/noah-isme/hms-api/pkg/response"
)

// AttendanceHandler exposes check-in and check-out endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	students   *service.StudentService
}

// NewAttendanceHandler builds an AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, students *service.StudentService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, students: students}
}

// CheckIn godoc
// @Summary Check in for today
// @Tags attendance
// @Produce json
// @Success 201 {object} models.Attendance
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.attendance.CheckIn(c, student.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// CheckOut godoc
// @Summary Check out for today
// @Tags attendance
// @Produce json
// @Success 201 {object} models.Attendance
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.attendance.CheckOut(c, student.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Status godoc
// @Summary Fetch the caller's attendance status for today
// @Tags attendance
// @Produce json
// @Success 200 {object} models.TodayAttendanceStatus
// @Security BearerAuth
// @Router /attendance/status [get]
func (h *AttendanceHandler) Status(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	status, err := h.attendance.TodayStatus(c, student.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Today godoc
// @Summary List today's attendance for every student
// @Tags attendance
// @Produce json
// @Success 200 {array} models.AttendanceSummary
// @Security BearerAuth
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(c *gin.Context) {
	summaries, err := h.attendance.ListToday(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries)
}

// History godoc
// @Summary List the caller's recent attendance events
// @Tags attendance
// @Produce json
// @Param limit query int false "Maximum records" default(50)
// @Success 200 {array} models.Attendance
// @Security BearerAuth
// @Router /attendance/history [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	student, err := callerStudent(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	records, err := h.attendance.History(c, student.StudentID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// StudentHistory godoc
// @Summary List one student's recent attendance events
// @Tags attendance
// @Produce json
// @Param studentId path string true "Student business key"
// @Param limit query int false "Maximum records" default(50)
// @Success 200 {array} models.Attendance
// @Security BearerAuth
// @Router /attendance/students/{studentId} [get]
func (h *AttendanceHandler) StudentHistory(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	records, err := h.attendance.History(c, c.Param("studentId"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/middleware"
	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Students      *StudentHandler
	Rooms         *RoomHandler
	RoomRequests  *RoomRequestHandler
	Attendance    *AttendanceHandler
	Fees          *FeeHandler
	Complaints    *ComplaintHandler
	Leaves        *LeaveHandler
	Announcements *AnnouncementHandler
	Notifications *NotificationHandler
	MessMenu      *MessMenuHandler
	Dashboard     *DashboardHandler
	Reports       *ReportHandler
}

// RegisterRoutes mounts the API under prefix with JWT authentication
// and per-route role checks.
func RegisterRoutes(router *gin.Engine, prefix string, auth *service.AuthService, h Handlers) {
	api := router.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.Auth(auth))

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	studentOnly := middleware.RequireRoles(models.RoleStudent)
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleStudent)

	authed.POST("/auth/register", adminOnly, h.Auth.Register)
	authed.POST("/auth/change-password", anyRole, h.Auth.ChangePassword)

	authed.POST("/students", adminOnly, h.Students.Create)
	authed.GET("/students", adminOnly, h.Students.List)
	authed.GET("/students/me", studentOnly, h.Students.Me)
	authed.PUT("/students/me", studentOnly, h.Students.UpdateMe)
	authed.GET("/students/:id", adminOnly, h.Students.Get)
	authed.PUT("/students/:id", adminOnly, h.Students.Update)
	authed.DELETE("/students/:id", adminOnly, h.Students.Delete)

	authed.POST("/rooms", adminOnly, h.Rooms.Create)
	authed.GET("/rooms", anyRole, h.Rooms.List)
	authed.GET("/rooms/:id", anyRole, h.Rooms.Get)
	authed.PUT("/rooms/:id", adminOnly, h.Rooms.Update)
	authed.DELETE("/rooms/:id", adminOnly, h.Rooms.Delete)

	authed.POST("/room-requests", studentOnly, h.RoomRequests.Submit)
	authed.GET("/room-requests", adminOnly, h.RoomRequests.List)
	authed.GET("/room-requests/mine", studentOnly, h.RoomRequests.Mine)
	authed.PUT("/room-requests/:id/approve", adminOnly, h.RoomRequests.Approve)
	authed.PUT("/room-requests/:id/reject", adminOnly, h.RoomRequests.Reject)
	authed.DELETE("/room-requests/:id", studentOnly, h.RoomRequests.Cancel)

	authed.POST("/attendance/checkin", studentOnly, h.Attendance.CheckIn)
	authed.POST("/attendance/checkout", studentOnly, h.Attendance.CheckOut)
	authed.GET("/attendance/status", studentOnly, h.Attendance.Status)
	authed.GET("/attendance/history", studentOnly, h.Attendance.History)
	authed.GET("/attendance/today", adminOnly, h.Attendance.Today)
	authed.GET("/attendance/students/:studentId", adminOnly, h.Attendance.StudentHistory)

	authed.POST("/fees", adminOnly, h.Fees.Create)
	authed.POST("/fees/generate", adminOnly, h.Fees.Generate)
	authed.GET("/fees", adminOnly, h.Fees.List)
	authed.GET("/fees/mine", studentOnly, h.Fees.Mine)
	authed.PUT("/fees/:id", adminOnly, h.Fees.Update)
	authed.PUT("/fees/:id/toggle", adminOnly, h.Fees.Toggle)
	authed.DELETE("/fees/:id", adminOnly, h.Fees.Delete)

	authed.POST("/complaints", studentOnly, h.Complaints.Create)
	authed.GET("/complaints", adminOnly, h.Complaints.List)
	authed.GET("/complaints/mine", studentOnly, h.Complaints.Mine)
	authed.PUT("/complaints/:id/resolve", adminOnly, h.Complaints.Resolve)
	authed.DELETE("/complaints/:id", adminOnly, h.Complaints.Delete)

	authed.POST("/leaves", studentOnly, h.Leaves.Apply)
	authed.GET("/leaves", adminOnly, h.Leaves.List)
	authed.GET("/leaves/mine", studentOnly, h.Leaves.Mine)
	authed.PUT("/leaves/:id/approve", adminOnly, h.Leaves.Approve)
	authed.PUT("/leaves/:id/reject", adminOnly, h.Leaves.Reject)
	authed.DELETE("/leaves/:id", adminOnly, h.Leaves.Delete)

	authed.POST("/announcements", adminOnly, h.Announcements.Create)
	authed.GET("/announcements", anyRole, h.Announcements.List)
	authed.DELETE("/announcements/:id", adminOnly, h.Announcements.Delete)

	authed.GET("/notifications", anyRole, h.Notifications.List)
	authed.GET("/notifications/unread-count", anyRole, h.Notifications.UnreadCount)
	authed.PUT("/notifications/:id/read", anyRole, h.Notifications.MarkRead)
	authed.PUT("/notifications/read-all", anyRole, h.Notifications.MarkAllRead)
	authed.DELETE("/notifications/:id", adminOnly, h.Notifications.Delete)

	authed.GET("/mess-menu", anyRole, h.MessMenu.Get)
	authed.PUT("/mess-menu", adminOnly, h.MessMenu.UpdateDay)

	authed.GET("/dashboard/stats", adminOnly, h.Dashboard.Stats)

	authed.GET("/reports/students", adminOnly, h.Reports.Students)
	authed.GET("/reports/fees", adminOnly, h.Reports.Fees)
	authed.GET("/reports/attendance", adminOnly, h.Reports.Attendance)
}

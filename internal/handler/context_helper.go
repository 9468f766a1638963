package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/middleware"
	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

// callerStudent resolves the authenticated caller to their student
// profile. Accounts without a linked profile get a client error.
func callerStudent(c *gin.Context, students *service.StudentService) (*models.Student, error) {
	profileID := middleware.CallerStudentProfile(c)
	if profileID == "" {
		return nil, appErrors.ErrProfileNotLinked
	}
	return students.Get(c, profileID)
}

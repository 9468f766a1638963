package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/response"
)

// Context keys set by the auth middleware.
const (
	ContextUserID    = "auth_user_id"
	ContextUsername  = "auth_username"
	ContextRole      = "auth_role"
	ContextStudentID = "auth_student_id"
)

type tokenParser interface {
	ParseToken(token string) (*models.JWTClaims, error)
}

// Auth validates the bearer token and stores the caller's identity in
// the request context.
func Auth(parser tokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "malformed authorization header"))
			c.Abort()
			return
		}

		claims, err := parser.ParseToken(parts[1])
		if err != nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		if claims.StudentID != nil {
			c.Set(ContextStudentID, *claims.StudentID)
		}
		c.Next()
	}
}

// CallerRole returns the authenticated caller's role.
func CallerRole(c *gin.Context) models.UserRole {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(models.UserRole); ok {
			return role
		}
	}
	return ""
}

// CallerUserID returns the authenticated caller's account ID.
func CallerUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// CallerStudentProfile returns the student profile document ID linked
// to the caller's account, empty for admins.
func CallerStudentProfile(c *gin.Context) string {
	return c.GetString(ContextStudentID)
}

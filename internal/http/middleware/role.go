package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/response"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/ctxutil"
)

const (
	headerRole  = "X-User-Role"
	RoleTeacher = "teacher"
)

// AttachRole copies the role header set by the gateway into the request
// context. The value is trusted as-is.
func AttachRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetHeader(headerRole)))
		if role != "" {
			c.Request = c.Request.WithContext(ctxutil.WithRole(c.Request.Context(), role))
			c.Set("role", role)
		}
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctxutil.GetRole(c.Request.Context()) != role {
			response.RespondError(c, http.StatusForbidden, "forbidden", errors.New(role+" role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/internhub/internal/models"
	"github.com/yoockh/internhub/internal/utils"
)

// RequireRole rejects callers whose role is not in the allowed set. A wrong
// role is Forbidden; ownership checks deeper in the services return
// Unauthorized instead.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	allow := map[models.UserRole]struct{}{}
	for _, a := range allowed {
		a = models.UserRole(strings.TrimSpace(strings.ToLower(string(a))))
		if a != "" {
			allow[a] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		v, ok := c.Get("role")
		role, _ := v.(string)
		role = strings.ToLower(strings.TrimSpace(role))

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "forbidden",
			})
			return
		}

		if _, ok := allow[models.UserRole(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "forbidden",
			})
			return
		}

		c.Next()
	}
}

func RequireReviewer() gin.HandlerFunc {
	return RequireRole(models.RoleFaculty, models.RoleAdmin)
}

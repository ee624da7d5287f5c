package middleware

import (
	"net/http"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RequirePermission checks that the JWT grants perm.
func RequirePermission(perm model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !claims.HasPermission(string(perm)) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

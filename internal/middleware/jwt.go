package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

var errNoBearer = errors.New("bearer token required")

// RequireTeacherJWT validates a dashboard JWT from the Authorization header.
// Admins are teachers too; what they may do beyond that is decided by
// RequirePermission.
func RequireTeacherJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := bearerToken(c)
		if err != nil {
			response.AbortFailWithHeader(c, http.StatusUnauthorized, response.ErrTokenRequired, "WWW-Authenticate", "Bearer")
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFailWithHeader(c, http.StatusUnauthorized, response.ErrTokenInvalid, "WWW-Authenticate", `Bearer error="invalid_token"`)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) (string, error) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errNoBearer
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errNoBearer
	}
	return token, nil
}

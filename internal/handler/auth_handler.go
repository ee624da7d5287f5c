package handler

import (
	"errors"
	"net/http"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/middleware"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/enkellaering/admin-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	teacherService *service.TeacherService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, teacherService *service.TeacherService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		teacherService: teacherService,
	}
}

// TeacherLogin godoc
// POST /api/v1/auth/teacher/login
// Exchanges the caller's identity-provider token for a dashboard token. The
// token is checked by the backend against user_id before anything is issued.
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var req model.TeacherLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.teacherService.Login(c.Request.Context(), req.UserID, req.IDToken)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, resp)
	case errors.Is(err, service.ErrIDTokenRequired):
		response.AbortFailWithHeader(c, http.StatusUnauthorized, response.ErrTokenRequired, "WWW-Authenticate", "Bearer")
	case errors.Is(err, backend.ErrUnauthorized):
		response.AbortFailWithHeader(c, http.StatusUnauthorized, response.ErrTokenInvalid, "WWW-Authenticate", `Bearer error="invalid_token"`)
	case errors.Is(err, backend.ErrNotFound):
		response.Fail(c, http.StatusUnauthorized, response.ErrTeacherUnknown)
	case errors.Is(err, service.ErrTeacherResigned):
		response.Fail(c, http.StatusForbidden, response.ErrTeacherResigned)
	default:
		failBackend(c, err)
	}
}

// TeacherLogout godoc
// POST /api/v1/auth/teacher/logout
func (h *AuthHandler) TeacherLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.RevokeSession(c.Request.Context(), claims.UserID); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetTeacherProfile godoc
// GET /api/v1/auth/teacher/me
// Returns the logged-in teacher and the permissions carried by the token.
func (h *AuthHandler) GetTeacherProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	teacher, err := h.teacherService.GetTeacher(c.Request.Context(), claims.UserID)
	if err != nil {
		failBackend(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"teacher":     teacher,
		"permissions": claims.Permissions,
	})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/middleware"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/enkellaering/admin-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// TeacherHandler serves teacher records, signup and the teacher's own classes.
type TeacherHandler struct {
	teacherService *service.TeacherService
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(teacherService *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

// GetAdminTeacher godoc
// GET /api/v1/admin/teacher
// Returns the admin's own teacher record for the dashboard header.
func (h *TeacherHandler) GetAdminTeacher(c *gin.Context) {
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
		"teacher":   teacher,
		"full_name": teacher.FullName(),
	})
}

// SignupTeacher godoc
// POST /api/v1/signup/teacher
// The id_token is forwarded so the backend can tie the record to the
// identity-provider account.
func (h *TeacherHandler) SignupTeacher(c *gin.Context) {
	var req model.SignupTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := backend.WithBearer(c.Request.Context(), req.IDToken)
	resp, err := h.teacherService.Signup(ctx, &req)
	if err != nil {
		failBackend(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// DeleteClass godoc
// DELETE /api/v1/teacher/classes/:id
func (h *TeacherHandler) DeleteClass(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classID := strings.TrimSpace(c.Param("id"))
	if classID == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.teacherService.DeleteClass(c.Request.Context(), claims.UserID, classID); err != nil {
		failBackend(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

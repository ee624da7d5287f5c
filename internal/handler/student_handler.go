package handler

import (
	"net/http"
	"strings"

	"github.com/enkellaering/admin-backend/internal/middleware"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles the admin's new-student queue.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// HideNewStudent godoc
// POST /api/v1/admin/new-students/:id/hide
func (h *StudentHandler) HideNewStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.studentService.HideNewStudent(c.Request.Context(), claims.UserID, id); err != nil {
		failBackend(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"new_student_id": id, "hidden": true})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// failBackend maps an error from a backend-facing call to a response.
// Unknown errors are treated as ours, not the backend's.
func failBackend(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, backend.ErrTimeout):
		response.Fail(c, http.StatusGatewayTimeout, response.ErrUpstreamTimeout)
	case errors.Is(err, backend.ErrUnauthorized):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	case errors.Is(err, backend.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, backend.ErrUpstream):
		response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/middleware"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/enkellaering/admin-backend/internal/revenue"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/enkellaering/admin-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// RevenueHandler serves the admin revenue dashboard.
type RevenueHandler struct {
	revenueService *service.RevenueService
	archiveService *service.ArchiveService
	now            func() time.Time
}

// NewRevenueHandler creates a new RevenueHandler.
func NewRevenueHandler(revenueService *service.RevenueService, archiveService *service.ArchiveService) *RevenueHandler {
	return &RevenueHandler{
		revenueService: revenueService,
		archiveService: archiveService,
		now:            time.Now,
	}
}

// GetMonthlyRevenue godoc
// GET /api/v1/admin/revenue?year=&month=
// Returns one entry per day of the month and the month total. An admin has
// one report view: a newer request from the same admin, for any month, makes
// an older in-flight one answer 409 REPORT_SUPERSEDED. Clients that need
// several months at once should read GET /revenue/history instead.
func (h *RevenueHandler) GetMonthlyRevenue(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var q model.RevenueQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	current := h.now().In(h.revenueService.Location())
	if q.Year == 0 {
		q.Year = current.Year()
	}
	if q.Month == 0 {
		q.Month = int(current.Month())
	}

	report, err := h.revenueService.MonthlyReport(c.Request.Context(), claims.UserID, q.Year, q.Month)
	if err != nil {
		failReport(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// RefreshRevenue godoc
// POST /api/v1/admin/revenue/refresh
// Drops the cached class sessions so the next report refetches them.
func (h *RevenueHandler) RefreshRevenue(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.revenueService.Refresh(c.Request.Context(), claims.UserID); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"refreshed": true})
}

// GetHistory godoc
// GET /api/v1/admin/revenue/history?limit=
func (h *RevenueHandler) GetHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var q model.HistoryQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snapshots, err := h.archiveService.History(c.Request.Context(), claims.UserID, q.Limit)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"snapshots": snapshots})
}

// CreateSnapshot godoc
// POST /api/v1/admin/revenue/snapshots
// Archives the given month, replacing an earlier snapshot of it.
func (h *RevenueHandler) CreateSnapshot(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateSnapshotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snap, err := h.archiveService.Archive(c.Request.Context(), claims.UserID, req.Year, req.Month)
	if err != nil {
		failReport(c, err)
		return
	}
	response.Success(c, http.StatusCreated, snap)
}

func failReport(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrSuperseded):
		response.Fail(c, http.StatusConflict, response.ErrReportSuperseded)
	case errors.Is(err, revenue.ErrInvalidOptions):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"detail": err.Error()})
	case errors.Is(err, backend.ErrTimeout):
		response.Fail(c, http.StatusGatewayTimeout, response.ErrUpstreamTimeout)
	case errors.Is(err, service.ErrFetchFailed):
		response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
	"github.com/petrobook/petrobook/internal/middleware"
)

// dashboardDateLayout is the wire format for the dashboard date range.
const dashboardDateLayout = "2006-01-02"

// dashboardHandler handles HTTP requests for the dashboard summary.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
}

// newDashboardHandler creates a new dashboardHandler.
func newDashboardHandler(ds portssvc.DashboardSvc) *dashboardHandler {
	return &dashboardHandler{
		dashboardService: ds,
	}
}

// registerDashboardRoutes registers routes related to the dashboard.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := newDashboardHandler(dashboardService)

	rg.GET("/dashboard/summary", h.getSummary)
}

// getSummary godoc
// @Summary Get the dashboard summary
// @Description Computes invoiced/paid totals, monthly cashflow buckets and top customers for a date range. Defaults to the trailing 12 months.
// @Tags dashboard
// @Produce  json
// @Param   from query string false "Range start (YYYY-MM-DD)"
// @Param   to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse "Invalid date format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to compute summary"
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	// Default to the trailing 12 months ending today.
	now := time.Now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	from := to.AddDate(-1, 0, 0)

	if params.From != "" {
		parsed, err := time.Parse(dashboardDateLayout, params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if params.To != "" {
		parsed, err := time.Parse(dashboardDateLayout, params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		// The 'to' date is inclusive on the wire; the range end is exclusive.
		to = parsed.AddDate(0, 0, 1)
	}

	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "'from' must be before 'to'"})
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to compute dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradeboard/backend/internal/application/report"
)

const dateLayout = "2006-01-02"

// DashboardHandler handles dashboard KPI requests
type DashboardHandler struct {
	BaseHandler
	dashboard *report.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get handles GET /api/dashboard?startDate=...&endDate=...
// Both dates are inclusive calendar days.
func (h *DashboardHandler) Get(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		h.BadRequest(c, "startDate must be a YYYY-MM-DD date")
		return
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		h.BadRequest(c, "endDate must be a YYYY-MM-DD date")
		return
	}

	// inclusive endDate to half-open range
	resp, err := h.dashboard.GetDashboard(c.Request.Context(), start, end.AddDate(0, 0, 1))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

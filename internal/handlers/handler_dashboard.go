package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the aggregate projections.
type dashboardHandler struct {
	feed portssvc.FeedReaderSvc
	now  func() time.Time
}

// registerDashboardRoutes registers the dashboard and raw data routes.
func registerDashboardRoutes(rg *gin.RouterGroup, feed portssvc.FeedReaderSvc) {
	h := &dashboardHandler{feed: feed, now: time.Now}

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/data", h.getFilteredData)
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Latest recap, next event, ledger summary and counts for the viewing context
// @Tags dashboard
// @Produce  json
// @Success 200 {object} domain.Dashboard
// @Failure 500 {object} dto.ErrorResponse "Failed to build dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	dashboard, err := h.feed.Dashboard(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// getFilteredData godoc
// @Summary Get all visible data
// @Description The four entity collections as seen by the viewing context
// @Tags dashboard
// @Produce  json
// @Success 200 {object} domain.AppData
// @Security BearerAuth
// @Router /data [get]
func (h *dashboardHandler) getFilteredData(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.FilteredData(c.Request.Context()))
}

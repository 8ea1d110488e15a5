package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"

	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/SscSPs/ops_tracker/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// recapHandler handles HTTP requests related to recaps and their comments.
type recapHandler struct {
	controller portssvc.ContextControllerFacade
	analytics  *utils.PosthogClientWrapper
}

// registerRecapRoutes registers routes related to recaps.
func registerRecapRoutes(rg *gin.RouterGroup, controller portssvc.ContextControllerFacade, analytics *utils.PosthogClientWrapper) {
	h := &recapHandler{controller: controller, analytics: analytics}

	recaps := rg.Group("/recaps")
	{
		recaps.GET("", h.listRecaps)
		recaps.POST("", h.createRecap)
		recaps.POST("/:recapID/comments", h.addComment)
	}
}

// listRecaps godoc
// @Summary List recaps
// @Description Lists the recaps visible in the current viewing context, newest first
// @Tags recaps
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRecapsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /recaps [get]
func (h *recapHandler) listRecaps(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	data := h.controller.FilteredData(c.Request.Context())
	recaps, next, err := pagination.Page(data.Recaps, func(r domain.Recap) (time.Time, string) {
		return r.CreatedAt, r.RecapID
	}, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list recaps")
		return
	}
	c.JSON(http.StatusOK, dto.ListRecapsResponse{Recaps: recaps, NextToken: next})
}

// createRecap godoc
// @Summary File a recap
// @Description Creates a daily or weekly recap authored by the acting user
// @Tags recaps
// @Accept  json
// @Produce  json
// @Param   recap body dto.CreateRecapRequest true "Recap details"
// @Success 201 {object} domain.Recap
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "No acting user"
// @Failure 500 {object} dto.ErrorResponse "Failed to create recap"
// @Security BearerAuth
// @Router /recaps [post]
func (h *recapHandler) createRecap(c *gin.Context) {
	var req dto.CreateRecapRequest
	if !bindJSON(c, &req, "CreateRecap") {
		return
	}
	recap, err := h.controller.CreateRecap(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create recap")
		return
	}
	middleware.PosthogEvent(c, h.analytics, "recap_created", map[string]any{"kind": string(recap.Kind)})
	c.JSON(http.StatusCreated, recap)
}

// addComment godoc
// @Summary Comment on a recap
// @Tags recaps
// @Accept  json
// @Produce  json
// @Param   recapID path string true "Recap ID"
// @Param   comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} domain.Recap
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Recap not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to add comment"
// @Security BearerAuth
// @Router /recaps/{recapID}/comments [post]
func (h *recapHandler) addComment(c *gin.Context) {
	recapID := c.Param("recapID")
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req, "AddComment") {
		return
	}
	recap, err := h.controller.AddComment(c.Request.Context(), recapID, req)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Comment added", slog.String("recap_id", recapID))
	c.JSON(http.StatusCreated, recap)
}

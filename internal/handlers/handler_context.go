package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// contextHandler handles the session viewing context.
type contextHandler struct {
	controller portssvc.ContextControllerFacade
}

func newContextHandler(controller portssvc.ContextControllerFacade) *contextHandler {
	return &contextHandler{controller: controller}
}

// registerContextRoutes registers routes related to the viewing context.
func registerContextRoutes(rg *gin.RouterGroup, controller portssvc.ContextControllerFacade) {
	h := newContextHandler(controller)

	ctxGroup := rg.Group("/context")
	{
		ctxGroup.GET("", h.getContext)
		ctxGroup.POST("/role", h.switchRole)
		ctxGroup.PUT("/subject", h.selectSubject)
		ctxGroup.PUT("/currency", h.setDisplayCurrency)
		ctxGroup.PUT("/view", h.setActiveView)
	}
}

// getContext godoc
// @Summary Get the viewing context
// @Description Returns the session state with the acting user, the selected manager and the roster of managers
// @Tags context
// @Produce  json
// @Success 200 {object} dto.ContextResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /context [get]
func (h *contextHandler) getContext(c *gin.Context) {
	c.JSON(http.StatusOK, h.describe(c.Request.Context(), h.controller.State(c.Request.Context())))
}

// switchRole godoc
// @Summary Switch the active role
// @Description Toggles between owner and manager. The active view is reset to the dashboard.
// @Tags context
// @Accept  json
// @Produce  json
// @Param   role body dto.SwitchRoleRequest true "Role"
// @Success 200 {object} dto.ContextResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /context/role [post]
func (h *contextHandler) switchRole(c *gin.Context) {
	var req dto.SwitchRoleRequest
	if !bindJSON(c, &req, "SwitchRole") {
		return
	}
	state, err := h.controller.SwitchRole(c.Request.Context(), req.Role)
	if err != nil {
		respondError(c, err, "Failed to switch role")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Role switched", slog.String("role", string(state.ActiveRole)))
	c.JSON(http.StatusOK, h.describe(c.Request.Context(), state))
}

// selectSubject godoc
// @Summary Select the manager in view
// @Tags context
// @Accept  json
// @Produce  json
// @Param   subject body dto.SelectSubjectRequest true "Manager ID"
// @Success 200 {object} dto.ContextResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Manager not found"
// @Security BearerAuth
// @Router /context/subject [put]
func (h *contextHandler) selectSubject(c *gin.Context) {
	var req dto.SelectSubjectRequest
	if !bindJSON(c, &req, "SelectSubject") {
		return
	}
	state, err := h.controller.SelectSubject(c.Request.Context(), req.SubjectID)
	if err != nil {
		respondError(c, err, "Failed to select subject")
		return
	}
	c.JSON(http.StatusOK, h.describe(c.Request.Context(), state))
}

// setDisplayCurrency godoc
// @Summary Set the display currency
// @Tags context
// @Accept  json
// @Produce  json
// @Param   currency body dto.SetDisplayCurrencyRequest true "Currency code"
// @Success 200 {object} dto.ContextResponse
// @Failure 400 {object} dto.ErrorResponse "Unsupported currency"
// @Security BearerAuth
// @Router /context/currency [put]
func (h *contextHandler) setDisplayCurrency(c *gin.Context) {
	var req dto.SetDisplayCurrencyRequest
	if !bindJSON(c, &req, "SetDisplayCurrency") {
		return
	}
	state, err := h.controller.SetDisplayCurrency(c.Request.Context(), req.CurrencyCode)
	if err != nil {
		respondError(c, err, "Failed to set display currency")
		return
	}
	c.JSON(http.StatusOK, h.describe(c.Request.Context(), state))
}

// setActiveView godoc
// @Summary Set the active view
// @Tags context
// @Accept  json
// @Produce  json
// @Param   view body dto.SetActiveViewRequest true "View"
// @Success 200 {object} dto.ContextResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown view"
// @Security BearerAuth
// @Router /context/view [put]
func (h *contextHandler) setActiveView(c *gin.Context) {
	var req dto.SetActiveViewRequest
	if !bindJSON(c, &req, "SetActiveView") {
		return
	}
	state, err := h.controller.SetActiveView(c.Request.Context(), req.View)
	if err != nil {
		respondError(c, err, "Failed to set active view")
		return
	}
	c.JSON(http.StatusOK, h.describe(c.Request.Context(), state))
}

func (h *contextHandler) describe(ctx context.Context, state domain.AppState) dto.ContextResponse {
	managers := h.controller.Managers(ctx)
	res := dto.ContextResponse{
		State:    state,
		Managers: dto.ToListUserResponse(managers),
	}
	for i := range managers {
		if managers[i].UserID == state.SelectedSubjectID {
			subject := dto.ToUserResponse(&managers[i])
			res.Subject = &subject
		}
	}
	if state.ActiveRole == domain.RoleOwner {
		if owner, err := h.controller.Owner(ctx); err == nil {
			actor := dto.ToUserResponse(owner)
			res.Actor = &actor
		}
	} else {
		res.Actor = res.Subject
	}
	return res
}

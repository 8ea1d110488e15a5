package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to the roster.
type userHandler struct {
	roster    portssvc.RosterSvc
	analytics *utils.PosthogClientWrapper
}

// registerUserRoutes registers routes related to users.
func registerUserRoutes(rg *gin.RouterGroup, roster portssvc.RosterSvc, analytics *utils.PosthogClientWrapper) {
	h := &userHandler{roster: roster, analytics: analytics}

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("/managers", h.addManager)
	}
}

// listUsers godoc
// @Summary List users
// @Description Returns the owner and every manager in insertion order
// @Tags users
// @Produce  json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	users := h.roster.ListUsers(c.Request.Context())
	c.JSON(http.StatusOK, dto.ListUsersResponse{Users: dto.ToListUserResponse(users)})
}

// addManager godoc
// @Summary Add a manager
// @Description Adds a manager to the roster. Only allowed in the owner role. The first manager becomes the selected subject.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   manager body dto.AddManagerRequest true "Manager details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Not in the owner role"
// @Failure 500 {object} dto.ErrorResponse "Failed to add manager"
// @Security BearerAuth
// @Router /users/managers [post]
func (h *userHandler) addManager(c *gin.Context) {
	var req dto.AddManagerRequest
	if !bindJSON(c, &req, "AddManager") {
		return
	}
	manager, err := h.roster.AddManager(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to add manager")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Manager added", slog.String("user_id", manager.UserID))
	middleware.PosthogEvent(c, h.analytics, "manager_added", nil)
	c.JSON(http.StatusCreated, dto.ToUserResponse(manager))
}

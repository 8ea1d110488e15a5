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

// assistantHandler turns transcribed voice input into entities.
type assistantHandler struct {
	writer    portssvc.EntityWriterSvc
	analytics *utils.PosthogClientWrapper
}

// registerAssistantRoutes registers the voice assistant routes.
func registerAssistantRoutes(rg *gin.RouterGroup, writer portssvc.EntityWriterSvc, analytics *utils.PosthogClientWrapper) {
	h := &assistantHandler{writer: writer, analytics: analytics}
	rg.POST("/assistant/utterances", h.applyUtterance)
}

// applyUtterance godoc
// @Summary Apply a voice utterance
// @Description Classifies the text into intents and applies each one. Rejected intents carry an error and do not stop the others.
// @Tags assistant
// @Accept  json
// @Produce  json
// @Param   utterance body dto.UtteranceRequest true "Transcribed text"
// @Success 200 {object} dto.UtteranceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 422 {object} dto.ErrorResponse "Nothing actionable or assistant disabled"
// @Failure 500 {object} dto.ErrorResponse "Failed to process utterance"
// @Security BearerAuth
// @Router /assistant/utterances [post]
func (h *assistantHandler) applyUtterance(c *gin.Context) {
	var req dto.UtteranceRequest
	if !bindJSON(c, &req, "ApplyUtterance") {
		return
	}
	outcomes, err := h.writer.ApplyUtterance(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err, "Failed to process utterance")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Utterance processed", slog.Int("outcomes", len(outcomes)))
	middleware.PosthogEvent(c, h.analytics, "utterance_applied", map[string]any{"intents": len(outcomes)})
	c.JSON(http.StatusOK, dto.UtteranceResponse{Outcomes: outcomes})
}

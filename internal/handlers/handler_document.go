package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests related to document metadata.
type documentHandler struct {
	controller portssvc.ContextControllerFacade
	analytics  *utils.PosthogClientWrapper
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, controller portssvc.ContextControllerFacade, analytics *utils.PosthogClientWrapper) {
	h := &documentHandler{controller: controller, analytics: analytics}

	documents := rg.Group("/documents")
	{
		documents.GET("", h.listDocuments)
		documents.POST("", h.addDocument)
	}
}

// listDocuments godoc
// @Summary List documents
// @Description Lists visible documents, newest first, optionally filtered by a case-insensitive name match
// @Tags documents
// @Produce  json
// @Param   q query string false "Name filter"
// @Success 200 {object} dto.ListDocumentsResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	docs := h.controller.SearchDocuments(c.Request.Context(), params.Query)
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Documents: docs})
}

// addDocument godoc
// @Summary Register a document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document metadata"
// @Success 201 {object} domain.Document
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) addDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if !bindJSON(c, &req, "AddDocument") {
		return
	}
	doc, err := h.controller.AddDocument(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to add document")
		return
	}
	middleware.PosthogEvent(c, h.analytics, "document_added", map[string]any{"category": string(doc.Category)})
	c.JSON(http.StatusCreated, doc)
}

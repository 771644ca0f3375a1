// Package handlers provides HTTP handlers for render endpoints
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/InkVite/inkvite-go/internal/application/services"
	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// PreviewRequest renders an unsaved document with ad hoc event data.
type PreviewRequest struct {
	Document  *design.TemplateDocument `json:"document" binding:"required"`
	EventData map[string]string        `json:"eventData"`
}

// RenderHandlers contains all render-related HTTP handlers
type RenderHandlers struct {
	renderService *services.RenderService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewRenderHandlers creates render handlers with injected dependencies
func NewRenderHandlers(renderService *services.RenderService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *RenderHandlers {
	return &RenderHandlers{
		renderService: renderService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// PostPreview renders a document without persistence or caching.
func (h *RenderHandlers) PostPreview(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("render_preview_request")
	defer marker.Complete()

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, design.ErrTemplateStructure) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "corrupted template structure"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	output, err := h.renderService.RenderPreview(req.Document, req.EventData)
	if err != nil {
		if errors.Is(err, design.ErrTemplateStructure) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "corrupted template structure"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Render().Info("Preview render completed", "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"html": output.HTML,
		"css":  output.CSS,
	})
}

// GetInvitationRender renders a stored invitation by ID, fragment-cached.
func (h *RenderHandlers) GetInvitationRender(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("render_invitation_request")
	defer marker.Complete()

	output, err := h.renderService.RenderInvitation(c.Param("id"))
	if err != nil {
		h.respondRenderError(c, err)
		return
	}

	h.logger.Render().Info("Invitation render completed", "invitationId", c.Param("id"), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"html": output.HTML,
		"css":  output.CSS,
	})
}

// GetPublicRender renders the invitation behind a public URL slug. This is
// the unauthenticated guest-facing endpoint.
func (h *RenderHandlers) GetPublicRender(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("render_public_request")
	defer marker.Complete()

	output, err := h.renderService.RenderInvitationBySlug(c.Param("slug"))
	if err != nil {
		h.respondRenderError(c, err)
		return
	}

	h.logger.Render().Info("Public render completed", "slug", c.Param("slug"), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"html": output.HTML,
		"css":  output.CSS,
	})
}

func (h *RenderHandlers) respondRenderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, design.ErrTemplateStructure):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "corrupted template structure"})
	case isNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

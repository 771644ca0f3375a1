// Package handlers provides HTTP handlers for design endpoints
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/InkVite/inkvite-go/internal/application/services"
	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/performance"
	"github.com/InkVite/inkvite-go/internal/presentation/templates"
	"github.com/gin-gonic/gin"
)

// ConvertRequest carries a raw editor scene graph plus canvas options. The
// scene graph is kept as raw JSON so the adapter sees it verbatim.
type ConvertRequest struct {
	SceneGraph         json.RawMessage `json:"sceneGraph" binding:"required"`
	CanvasWidth        float64         `json:"canvasWidth"`
	CanvasHeight       float64         `json:"canvasHeight"`
	BackgroundImageURL string          `json:"backgroundImageUrl"`
}

// ValidateRequest carries a converted document for required-token checking.
type ValidateRequest struct {
	Document *design.TemplateDocument `json:"document" binding:"required"`
}

// CreateDesignRequest defines the structure for creating a new design.
type CreateDesignRequest struct {
	Title              string          `json:"title" binding:"required"`
	SceneGraph         json.RawMessage `json:"sceneGraph" binding:"required"`
	CanvasWidth        float64         `json:"canvasWidth"`
	CanvasHeight       float64         `json:"canvasHeight"`
	BackgroundImageURL string          `json:"backgroundImageUrl"`
}

// UpdateDesignRequest defines the structure for re-converting a design.
type UpdateDesignRequest struct {
	Title        string          `json:"title"`
	SceneGraph   json.RawMessage `json:"sceneGraph" binding:"required"`
	CanvasWidth  float64         `json:"canvasWidth"`
	CanvasHeight float64         `json:"canvasHeight"`
}

// BackgroundImageRequest carries a base64 data URL upload.
type BackgroundImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// DesignHandlers contains all design-related HTTP handlers
type DesignHandlers struct {
	designService *services.DesignService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewDesignHandlers creates design handlers with injected dependencies
func NewDesignHandlers(designService *services.DesignService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *DesignHandlers {
	return &DesignHandlers{
		designService: designService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// PostConvert runs the canvas-to-template adapter without persisting.
func (h *DesignHandlers) PostConvert(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("convert_scene_request")
	defer marker.Complete()

	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	doc, err := h.designService.ConvertScene(req.SceneGraph, templates.ConvertOptions{
		CanvasWidth:        req.CanvasWidth,
		CanvasHeight:       req.CanvasHeight,
		BackgroundImageURL: req.BackgroundImageURL,
	})
	if err != nil {
		if errors.Is(err, design.ErrMalformedSceneGraph) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed scene graph"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Design().Info("Convert request completed", "tokens", len(doc.TextMappings), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// PostValidate checks a converted document for the required token bindings.
func (h *DesignHandlers) PostValidate(c *gin.Context) {
	marker := h.perfTracker.StartOperation("validate_document_request")
	defer marker.Complete()

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, design.ErrTemplateStructure) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "corrupted template structure"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result := h.designService.Validate(req.Document)

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"isValid":       result.IsValid,
		"missingFields": result.MissingFields,
	})
}

// CreateDesign converts the scene graph and persists it as a new design.
func (h *DesignHandlers) CreateDesign(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_design_request")
	defer marker.Complete()

	var req CreateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	node, err := h.designService.Create(req.Title, req.SceneGraph, templates.ConvertOptions{
		CanvasWidth:        req.CanvasWidth,
		CanvasHeight:       req.CanvasHeight,
		BackgroundImageURL: req.BackgroundImageURL,
	})
	if err != nil {
		if errors.Is(err, design.ErrMalformedSceneGraph) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed scene graph"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Design().Info("Create design request completed", "id", node.ID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{"design": node})
}

// GetAllDesigns returns every design using cache-first pattern
func (h *DesignHandlers) GetAllDesigns(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_all_designs_request")
	defer marker.Complete()

	designs, err := h.designService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"designs": designs,
		"count":   len(designs),
	})
}

// GetDesignByID returns a specific design by ID using cache-first pattern
func (h *DesignHandlers) GetDesignByID(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_design_request")
	defer marker.Complete()

	node, err := h.designService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if node == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"design": node})
}

// UpdateDesign re-converts the scene graph for an existing design.
func (h *DesignHandlers) UpdateDesign(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("update_design_request")
	defer marker.Complete()

	var req UpdateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	node, err := h.designService.UpdateScene(c.Param("id"), req.Title, req.SceneGraph, templates.ConvertOptions{
		CanvasWidth:  req.CanvasWidth,
		CanvasHeight: req.CanvasHeight,
	})
	if err != nil {
		if errors.Is(err, design.ErrMalformedSceneGraph) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed scene graph"})
			return
		}
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Design().Info("Update design request completed", "id", node.ID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"design": node})
}

// DeleteDesign removes a design and its stored media.
func (h *DesignHandlers) DeleteDesign(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_design_request")
	defer marker.Complete()

	if err := h.designService.Delete(c.Param("id")); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// PostBackgroundImage stores an uploaded background for the design.
func (h *DesignHandlers) PostBackgroundImage(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("design_background_request")
	defer marker.Complete()

	var req BackgroundImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	node, err := h.designService.SetBackgroundImage(c.Param("id"), req.Image)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Media().Info("Background upload completed", "id", node.ID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"design": node})
}

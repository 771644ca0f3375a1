// Package handlers provides HTTP handlers for invitation endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/InkVite/inkvite-go/internal/application/services"
	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// CreateInvitationRequest defines the structure for creating an invitation.
type CreateInvitationRequest struct {
	Title      string            `json:"title" binding:"required"`
	DesignID   string            `json:"designId" binding:"required"`
	Slug       string            `json:"slug"`
	EventDate  *time.Time        `json:"eventDate"`
	EventTime  *string           `json:"eventTime"`
	Location   *string           `json:"location"`
	CustomText *string           `json:"customText"`
	MoreInfo   *string           `json:"moreInfo"`
	EventData  map[string]string `json:"eventData"`
}

// UpdateInvitationRequest defines the structure for updating an invitation.
type UpdateInvitationRequest struct {
	Title      string            `json:"title" binding:"required"`
	DesignID   string            `json:"designId"`
	Slug       string            `json:"slug"`
	EventDate  *time.Time        `json:"eventDate"`
	EventTime  *string           `json:"eventTime"`
	Location   *string           `json:"location"`
	CustomText *string           `json:"customText"`
	MoreInfo   *string           `json:"moreInfo"`
	EventData  map[string]string `json:"eventData"`
}

// InvitationHandlers contains all invitation-related HTTP handlers
type InvitationHandlers struct {
	invitationService *services.InvitationService
	logger            *logging.ChanneledLogger
	perfTracker       *performance.Tracker
}

// NewInvitationHandlers creates invitation handlers with injected dependencies
func NewInvitationHandlers(invitationService *services.InvitationService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *InvitationHandlers {
	return &InvitationHandlers{
		invitationService: invitationService,
		logger:            logger,
		perfTracker:       perfTracker,
	}
}

// CreateInvitation persists a new invitation bound to a design.
func (h *InvitationHandlers) CreateInvitation(c *gin.Context) {
	marker := h.perfTracker.StartOperation("create_invitation_request")
	defer marker.Complete()

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	node, err := h.invitationService.Create(&content.InvitationNode{
		Title:      req.Title,
		DesignID:   req.DesignID,
		Slug:       req.Slug,
		EventDate:  req.EventDate,
		EventTime:  req.EventTime,
		Location:   req.Location,
		CustomText: req.CustomText,
		MoreInfo:   req.MoreInfo,
		EventData:  req.EventData,
	})
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{"invitation": node})
}

// GetAllInvitations returns every invitation using cache-first pattern
func (h *InvitationHandlers) GetAllInvitations(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_all_invitations_request")
	defer marker.Complete()

	invitations, err := h.invitationService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"invitations": invitations,
		"count":       len(invitations),
	})
}

// GetInvitationByID returns a specific invitation by ID
func (h *InvitationHandlers) GetInvitationByID(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_invitation_request")
	defer marker.Complete()

	node, err := h.invitationService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if node == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"invitation": node})
}

// GetInvitationBySlug returns the public invitation for a URL slug.
func (h *InvitationHandlers) GetInvitationBySlug(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_invitation_by_slug_request")
	defer marker.Complete()

	node, err := h.invitationService.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if node == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"invitation": node})
}

// UpdateInvitation updates an existing invitation.
func (h *InvitationHandlers) UpdateInvitation(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_invitation_request")
	defer marker.Complete()

	var req UpdateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	node := &content.InvitationNode{
		ID:         c.Param("id"),
		Title:      req.Title,
		NodeType:   "Invitation",
		DesignID:   req.DesignID,
		Slug:       req.Slug,
		EventDate:  req.EventDate,
		EventTime:  req.EventTime,
		Location:   req.Location,
		CustomText: req.CustomText,
		MoreInfo:   req.MoreInfo,
		EventData:  req.EventData,
	}

	if err := h.invitationService.Update(node); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"invitation": node})
}

// DeleteInvitation removes an invitation.
func (h *InvitationHandlers) DeleteInvitation(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_invitation_request")
	defer marker.Complete()

	if err := h.invitationService.Delete(c.Param("id")); err != nil {
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

// Package handlers provides HTTP handlers for guest and RSVP endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/InkVite/inkvite-go/internal/application/services"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// AddGuestRequest defines the structure for a host-managed guest entry.
type AddGuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// RSVPSubmission is the public RSVP form payload.
type RSVPSubmission struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Status   string `json:"status" binding:"required"`
	PlusOnes int    `json:"plusOnes"`
	Message  string `json:"message"`
}

// GuestHandlers contains all guest-related HTTP handlers
type GuestHandlers struct {
	guestService      *services.GuestService
	invitationService *services.InvitationService
	logger            *logging.ChanneledLogger
	perfTracker       *performance.Tracker
}

// NewGuestHandlers creates guest handlers with injected dependencies
func NewGuestHandlers(guestService *services.GuestService, invitationService *services.InvitationService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *GuestHandlers {
	return &GuestHandlers{
		guestService:      guestService,
		invitationService: invitationService,
		logger:            logger,
		perfTracker:       perfTracker,
	}
}

// GetGuests returns the guest list for an invitation.
func (h *GuestHandlers) GetGuests(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_guests_request")
	defer marker.Complete()

	guests, err := h.guestService.GetByInvitation(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	attending := 0
	headcount := 0
	for _, g := range guests {
		if g.Status == "attending" {
			attending++
			headcount += 1 + g.PlusOnes
		}
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"guests":    guests,
		"count":     len(guests),
		"attending": attending,
		"headcount": headcount,
	})
}

// AddGuest adds a guest to the list without an RSVP.
func (h *GuestHandlers) AddGuest(c *gin.Context) {
	marker := h.perfTracker.StartOperation("add_guest_request")
	defer marker.Complete()

	var req AddGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	guest, err := h.guestService.Add(c.Param("id"), req.Name, req.Email)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{"guest": guest})
}

// DeleteGuest removes a guest from the list.
func (h *GuestHandlers) DeleteGuest(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_guest_request")
	defer marker.Complete()

	if err := h.guestService.Remove(c.Param("guestId")); err != nil {
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

// PostRSVP records a guest's response on the public invitation page. The
// invitation is addressed by slug; repeat submissions from the same email
// update the earlier response.
func (h *GuestHandlers) PostRSVP(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("rsvp_request")
	defer marker.Complete()

	invitation, err := h.invitationService.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if invitation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found"})
		return
	}

	var req RSVPSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	guest, err := h.guestService.SubmitRSVP(invitation.ID, services.RSVPRequest{
		Name:     req.Name,
		Email:    req.Email,
		Status:   req.Status,
		PlusOnes: req.PlusOnes,
		Message:  req.Message,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Guest().Info("RSVP request completed", "slug", c.Param("slug"), "status", guest.Status, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"guest": guest})
}

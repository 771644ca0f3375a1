package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/domain/repositories"
	"github.com/InkVite/inkvite-go/internal/infrastructure/email"
	"github.com/InkVite/inkvite-go/internal/infrastructure/email/templates"
	"github.com/InkVite/inkvite-go/internal/infrastructure/messaging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/security"
	"github.com/InkVite/inkvite-go/pkg/config"
)

// RSVPRequest is the public RSVP submission for an invitation.
type RSVPRequest struct {
	Name     string
	Email    string
	Status   string
	PlusOnes int
	Message  string
}

// GuestService manages guest lists and RSVP submissions.
type GuestService struct {
	guestRepo      repositories.GuestRepository
	invitationRepo repositories.InvitationRepository
	emailService   email.Service
	broadcaster    *messaging.PreviewBroadcaster
	logger         *logging.ChanneledLogger
}

// NewGuestService creates a new guest application service. The email service
// may be nil when no API key is configured; confirmations are then skipped.
func NewGuestService(
	guestRepo repositories.GuestRepository,
	invitationRepo repositories.InvitationRepository,
	emailService email.Service,
	broadcaster *messaging.PreviewBroadcaster,
	logger *logging.ChanneledLogger,
) *GuestService {
	return &GuestService{
		guestRepo:      guestRepo,
		invitationRepo: invitationRepo,
		emailService:   emailService,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// GetByInvitation returns the guest list for an invitation (cache-first).
func (s *GuestService) GetByInvitation(invitationID string) ([]*content.GuestNode, error) {
	if invitationID == "" {
		return nil, fmt.Errorf("invitation ID cannot be empty")
	}

	guests, err := s.guestRepo.FindByInvitation(invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guests for invitation %s: %w", invitationID, err)
	}
	return guests, nil
}

// Add creates a guest on the list without an RSVP, for host-managed lists.
func (s *GuestService) Add(invitationID, name, emailAddr string) (*content.GuestNode, error) {
	invitation, err := s.requireInvitation(invitationID)
	if err != nil {
		return nil, err
	}

	guest := &content.GuestNode{
		ID:           security.GenerateULID(),
		InvitationID: invitation.ID,
		NodeType:     "Guest",
		Name:         name,
		Email:        normalizeEmail(emailAddr),
		Status:       content.RSVPPending,
		Created:      time.Now().UTC(),
	}
	if guest.Name == "" {
		return nil, fmt.Errorf("guest name cannot be empty")
	}
	if guest.Email == "" {
		return nil, fmt.Errorf("guest email cannot be empty")
	}

	if err := s.guestRepo.Store(guest); err != nil {
		return nil, fmt.Errorf("failed to add guest: %w", err)
	}

	s.logger.Guest().Info("Guest added", "id", guest.ID, "invitationId", invitation.ID)
	return guest, nil
}

// SubmitRSVP records a guest's response. Submissions are idempotent per
// (invitation, email): a repeat submission updates the existing guest
// instead of creating a duplicate.
func (s *GuestService) SubmitRSVP(invitationID string, req RSVPRequest) (*content.GuestNode, error) {
	invitation, err := s.requireInvitation(invitationID)
	if err != nil {
		return nil, err
	}

	if req.Status != content.RSVPAttending && req.Status != content.RSVPDeclined {
		return nil, fmt.Errorf("invalid RSVP status %q", req.Status)
	}
	emailAddr := normalizeEmail(req.Email)
	if emailAddr == "" {
		return nil, fmt.Errorf("guest email cannot be empty")
	}
	if req.PlusOnes < 0 {
		req.PlusOnes = 0
	}

	now := time.Now().UTC()
	guest, err := s.guestRepo.FindByInvitationAndEmail(invitation.ID, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}

	if guest == nil {
		guest = &content.GuestNode{
			ID:           security.GenerateULID(),
			InvitationID: invitation.ID,
			NodeType:     "Guest",
			Email:        emailAddr,
			Created:      now,
		}
	}

	guest.Name = req.Name
	guest.Status = req.Status
	guest.PlusOnes = req.PlusOnes
	if req.Message != "" {
		msg := req.Message
		guest.Message = &msg
	}
	guest.RespondedAt = &now

	if guest.Created.Equal(now) {
		err = s.guestRepo.Store(guest)
	} else {
		err = s.guestRepo.Update(guest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record RSVP: %w", err)
	}

	s.broadcaster.BroadcastRSVPReceived(invitation.ID, invitation.DesignID)
	s.sendConfirmation(guest, invitation)

	s.logger.Guest().Info("RSVP recorded", "invitationId", invitation.ID, "status", guest.Status, "plusOnes", guest.PlusOnes)
	return guest, nil
}

// Remove deletes a guest from the list.
func (s *GuestService) Remove(id string) error {
	if id == "" {
		return fmt.Errorf("guest ID cannot be empty")
	}

	existing, err := s.guestRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to verify guest %s exists: %w", id, err)
	}
	if existing == nil {
		return fmt.Errorf("guest %s not found", id)
	}

	if err := s.guestRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete guest %s: %w", id, err)
	}
	return nil
}

func (s *GuestService) requireInvitation(invitationID string) (*content.InvitationNode, error) {
	if invitationID == "" {
		return nil, fmt.Errorf("invitation ID cannot be empty")
	}

	invitation, err := s.invitationRepo.FindByID(invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation %s: %w", invitationID, err)
	}
	if invitation == nil {
		return nil, fmt.Errorf("invitation %s not found", invitationID)
	}
	return invitation, nil
}

// sendConfirmation emails the guest off the request path. Email failures are
// logged, never surfaced to the RSVP response.
func (s *GuestService) sendConfirmation(guest *content.GuestNode, invitation *content.InvitationNode) {
	if s.emailService == nil {
		return
	}

	props := templates.RSVPConfirmationProps{
		GuestName:     guest.Name,
		EventTitle:    invitation.Title,
		Status:        guest.Status,
		PlusOnes:      guest.PlusOnes,
		InvitationURL: config.PublicBaseURL + "/i/" + invitation.Slug,
	}
	if invitation.EventDate != nil {
		props.EventDate = invitation.EventDate.Format("January 2, 2006")
	}
	if invitation.EventTime != nil {
		props.EventTime = *invitation.EventTime
	}
	if invitation.Location != nil {
		props.Location = *invitation.Location
	}

	toEmail := guest.Email
	go func() {
		if err := s.emailService.SendRSVPConfirmationEmail(toEmail, props); err != nil {
			s.logger.Email().Error("Failed to send RSVP confirmation", "error", err.Error(), "invitationId", invitation.ID)
		} else {
			s.logger.Email().Info("RSVP confirmation sent", "invitationId", invitation.ID)
		}
	}()
}

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

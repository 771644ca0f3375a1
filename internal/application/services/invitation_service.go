package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/domain/repositories"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/security"
)

var slugSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// InvitationService orchestrates invitation CRUD with cache-first lookups.
type InvitationService struct {
	invitationRepo repositories.InvitationRepository
	designRepo     repositories.DesignRepository
	logger         *logging.ChanneledLogger
}

// NewInvitationService creates a new invitation application service.
func NewInvitationService(
	invitationRepo repositories.InvitationRepository,
	designRepo repositories.DesignRepository,
	logger *logging.ChanneledLogger,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		designRepo:     designRepo,
		logger:         logger,
	}
}

// Create persists a new invitation bound to an existing design. A URL slug
// is derived from the title unless the caller supplies one.
func (s *InvitationService) Create(invitation *content.InvitationNode) (*content.InvitationNode, error) {
	if invitation == nil {
		return nil, fmt.Errorf("invitation cannot be nil")
	}
	if invitation.Title == "" {
		return nil, fmt.Errorf("invitation title cannot be empty")
	}
	if invitation.DesignID == "" {
		return nil, fmt.Errorf("invitation design ID cannot be empty")
	}

	designNode, err := s.designRepo.FindByID(invitation.DesignID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify design %s exists: %w", invitation.DesignID, err)
	}
	if designNode == nil {
		return nil, fmt.Errorf("design %s not found", invitation.DesignID)
	}

	invitation.ID = security.GenerateULID()
	invitation.NodeType = "Invitation"
	invitation.Created = time.Now().UTC()
	if invitation.Slug == "" {
		invitation.Slug = s.generateSlug(invitation.Title)
	} else if existing, err := s.invitationRepo.FindBySlug(invitation.Slug); err != nil {
		return nil, fmt.Errorf("failed to check slug %s: %w", invitation.Slug, err)
	} else if existing != nil {
		return nil, fmt.Errorf("slug %s is already taken", invitation.Slug)
	}

	if err := s.invitationRepo.Store(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.logger.System().Info("Invitation created", "id", invitation.ID, "slug", invitation.Slug)
	return invitation, nil
}

// GetByID returns an invitation by ID (cache-first).
func (s *InvitationService) GetByID(id string) (*content.InvitationNode, error) {
	if id == "" {
		return nil, fmt.Errorf("invitation ID cannot be empty")
	}

	invitation, err := s.invitationRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation %s: %w", id, err)
	}
	return invitation, nil
}

// GetBySlug returns the invitation behind a public URL slug.
func (s *InvitationService) GetBySlug(slug string) (*content.InvitationNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("invitation slug cannot be empty")
	}

	invitation, err := s.invitationRepo.FindBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation by slug %s: %w", slug, err)
	}
	return invitation, nil
}

// GetAll returns every invitation (cache-first).
func (s *InvitationService) GetAll() ([]*content.InvitationNode, error) {
	invitations, err := s.invitationRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all invitations: %w", err)
	}
	return invitations, nil
}

// Update updates an existing invitation and drops its cached render.
func (s *InvitationService) Update(invitation *content.InvitationNode) error {
	if invitation == nil {
		return fmt.Errorf("invitation cannot be nil")
	}
	if invitation.ID == "" {
		return fmt.Errorf("invitation ID cannot be empty")
	}
	if invitation.Title == "" {
		return fmt.Errorf("invitation title cannot be empty")
	}

	existing, err := s.invitationRepo.FindByID(invitation.ID)
	if err != nil {
		return fmt.Errorf("failed to verify invitation %s exists: %w", invitation.ID, err)
	}
	if existing == nil {
		return fmt.Errorf("invitation %s not found", invitation.ID)
	}

	if invitation.Slug == "" {
		invitation.Slug = existing.Slug
	}
	if invitation.DesignID == "" {
		invitation.DesignID = existing.DesignID
	}
	invitation.Created = existing.Created
	now := time.Now().UTC()
	invitation.Changed = &now

	if err := s.invitationRepo.Update(invitation); err != nil {
		return fmt.Errorf("failed to update invitation %s: %w", invitation.ID, err)
	}

	return nil
}

// Delete removes an invitation.
func (s *InvitationService) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("invitation ID cannot be empty")
	}

	existing, err := s.invitationRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to verify invitation %s exists: %w", id, err)
	}
	if existing == nil {
		return fmt.Errorf("invitation %s not found", id)
	}

	if err := s.invitationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete invitation %s: %w", id, err)
	}

	s.logger.System().Info("Invitation deleted", "id", id)
	return nil
}

// generateSlug derives a unique URL segment from the title. Collisions get a
// short random suffix rather than a retry loop over the repository.
func (s *InvitationService) generateSlug(title string) string {
	slug := strings.Trim(slugSanitizer.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "invitation"
	}

	if existing, err := s.invitationRepo.FindBySlug(slug); err == nil && existing == nil {
		return slug
	}
	return slug + "-" + strings.ToLower(security.GenerateULID()[20:])
}

package services

import (
	"fmt"
	"strconv"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
	"github.com/InkVite/inkvite-go/internal/domain/repositories"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/interfaces"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/presentation/templates"
)

// RenderService produces the guest-facing HTML and CSS for invitations,
// caching rendered fragments until the underlying design or invitation
// changes.
type RenderService struct {
	invitationRepo repositories.InvitationRepository
	designRepo     repositories.DesignRepository
	engine         *templates.Engine
	cache          interfaces.FragmentCache
	logger         *logging.ChanneledLogger
}

// NewRenderService creates a new render application service.
func NewRenderService(
	invitationRepo repositories.InvitationRepository,
	designRepo repositories.DesignRepository,
	engine *templates.Engine,
	cache interfaces.FragmentCache,
	logger *logging.ChanneledLogger,
) *RenderService {
	return &RenderService{
		invitationRepo: invitationRepo,
		designRepo:     designRepo,
		engine:         engine,
		cache:          cache,
		logger:         logger,
	}
}

// RenderInvitation renders the invitation's design document with its event
// data, serving from the fragment cache when possible.
func (s *RenderService) RenderInvitation(invitationID string) (*design.RenderedOutput, error) {
	if invitationID == "" {
		return nil, fmt.Errorf("invitation ID cannot be empty")
	}

	if html, css, found := s.cache.GetRenderedFragment(invitationID); found {
		s.logger.Render().Debug("Fragment cache hit", "invitationId", invitationID)
		return &design.RenderedOutput{HTML: html, CSS: css}, nil
	}

	invitation, err := s.invitationRepo.FindByID(invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation %s: %w", invitationID, err)
	}
	if invitation == nil {
		return nil, fmt.Errorf("invitation %s not found", invitationID)
	}

	return s.renderAndCache(invitation)
}

// RenderInvitationBySlug renders the invitation behind a public URL slug.
func (s *RenderService) RenderInvitationBySlug(slug string) (*design.RenderedOutput, error) {
	if slug == "" {
		return nil, fmt.Errorf("invitation slug cannot be empty")
	}

	invitation, err := s.invitationRepo.FindBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation by slug %s: %w", slug, err)
	}
	if invitation == nil {
		return nil, fmt.Errorf("invitation %s not found", slug)
	}

	if html, css, found := s.cache.GetRenderedFragment(invitation.ID); found {
		s.logger.Render().Debug("Fragment cache hit", "invitationId", invitation.ID)
		return &design.RenderedOutput{HTML: html, CSS: css}, nil
	}

	return s.renderAndCache(invitation)
}

// RenderPreview renders an unsaved document with ad hoc event data. Preview
// output is never cached and carries no invitation scoping.
func (s *RenderService) RenderPreview(doc *design.TemplateDocument, eventData map[string]string) (*design.RenderedOutput, error) {
	output, err := s.engine.Render(doc, eventData, "")
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return output, nil
}

func (s *RenderService) renderAndCache(invitation *content.InvitationNode) (*design.RenderedOutput, error) {
	designNode, err := s.designRepo.FindByID(invitation.DesignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get design %s: %w", invitation.DesignID, err)
	}
	if designNode == nil {
		return nil, fmt.Errorf("design %s not found for invitation %s", invitation.DesignID, invitation.ID)
	}

	eventData := BuildEventData(invitation)
	output, err := s.engine.Render(designNode.Document, eventData, invitation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to render invitation %s: %w", invitation.ID, err)
	}

	s.cache.SetRenderedFragment(invitation.ID, designNode.ID, output.HTML, output.CSS)
	s.logger.Render().Info("Invitation rendered", "invitationId", invitation.ID, "designId", designNode.ID)
	return output, nil
}

// BuildEventData flattens an invitation into the token dictionary consumed
// by the render engine. Free-form event data comes first; the typed fields
// overwrite the canonical tokens, including the split date parts.
func BuildEventData(invitation *content.InvitationNode) map[string]string {
	data := make(map[string]string, len(invitation.EventData)+8)
	for k, v := range invitation.EventData {
		data[k] = v
	}

	data["eventTitle"] = invitation.Title
	if invitation.EventDate != nil {
		date := *invitation.EventDate
		data["eventDate"] = date.Format("January 2, 2006")
		data["eventDay"] = strconv.Itoa(date.Day())
		data["eventMonth"] = date.Format("January")
		data["eventYear"] = strconv.Itoa(date.Year())
	}
	if invitation.EventTime != nil {
		data["eventTime"] = *invitation.EventTime
	}
	if invitation.Location != nil {
		data["location"] = *invitation.Location
	}
	if invitation.CustomText != nil {
		data["customText"] = *invitation.CustomText
	}
	if invitation.MoreInfo != nil {
		data["moreInfo"] = *invitation.MoreInfo
	}
	return data
}

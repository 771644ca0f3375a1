// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
	"github.com/InkVite/inkvite-go/internal/domain/repositories"
	"github.com/InkVite/inkvite-go/internal/infrastructure/media"
	"github.com/InkVite/inkvite-go/internal/infrastructure/messaging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/security"
	"github.com/InkVite/inkvite-go/internal/presentation/templates"
)

// DesignService orchestrates scene conversion and design persistence.
type DesignService struct {
	designRepo  repositories.DesignRepository
	adapter     *templates.Adapter
	images      *media.ImageProcessor
	broadcaster *messaging.PreviewBroadcaster
	logger      *logging.ChanneledLogger
}

// NewDesignService creates a new design application service.
func NewDesignService(
	designRepo repositories.DesignRepository,
	adapter *templates.Adapter,
	images *media.ImageProcessor,
	broadcaster *messaging.PreviewBroadcaster,
	logger *logging.ChanneledLogger,
) *DesignService {
	return &DesignService{
		designRepo:  designRepo,
		adapter:     adapter,
		images:      images,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// ConvertScene runs the canvas-to-template adapter without persisting
// anything. Used by the stateless convert endpoint and design previews.
func (s *DesignService) ConvertScene(sceneGraph any, opts templates.ConvertOptions) (*design.TemplateDocument, error) {
	doc, err := s.adapter.Convert(sceneGraph, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to convert scene graph: %w", err)
	}
	return doc, nil
}

// Validate checks a converted document for the required token bindings.
func (s *DesignService) Validate(doc *design.TemplateDocument) design.ValidationResult {
	return s.adapter.Validate(doc)
}

// Create converts the scene graph and persists the result as a new design.
func (s *DesignService) Create(title string, sceneGraph any, opts templates.ConvertOptions) (*content.DesignNode, error) {
	if title == "" {
		return nil, fmt.Errorf("design title cannot be empty")
	}

	doc, err := s.ConvertScene(sceneGraph, opts)
	if err != nil {
		return nil, err
	}

	node := &content.DesignNode{
		ID:       security.GenerateULID(),
		Title:    title,
		NodeType: "Design",
		Document: doc,
		Created:  time.Now().UTC(),
	}
	if opts.BackgroundImageURL != "" {
		url := opts.BackgroundImageURL
		node.BackgroundImageURL = &url
	}

	if err := s.designRepo.Store(node); err != nil {
		return nil, fmt.Errorf("failed to create design: %w", err)
	}

	s.logger.Design().Info("Design created", "id", node.ID, "title", node.Title, "tokens", len(doc.TextMappings))
	return node, nil
}

// UpdateScene re-converts the scene graph for an existing design and
// persists the new document. Every rendered fragment built on the design is
// invalidated and live preview clients are notified.
func (s *DesignService) UpdateScene(id, title string, sceneGraph any, opts templates.ConvertOptions) (*content.DesignNode, error) {
	node, err := s.designRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to verify design %s exists: %w", id, err)
	}
	if node == nil {
		return nil, fmt.Errorf("design %s not found", id)
	}

	if opts.BackgroundImageURL == "" && node.BackgroundImageURL != nil {
		opts.BackgroundImageURL = *node.BackgroundImageURL
	}

	doc, err := s.ConvertScene(sceneGraph, opts)
	if err != nil {
		return nil, err
	}

	if title != "" {
		node.Title = title
	}
	node.Document = doc
	now := time.Now().UTC()
	node.Changed = &now

	if err := s.designRepo.Update(node); err != nil {
		return nil, fmt.Errorf("failed to update design %s: %w", id, err)
	}

	s.broadcaster.BroadcastDesignUpdated(node.ID)
	s.logger.Design().Info("Design updated", "id", node.ID, "tokens", len(doc.TextMappings))
	return node, nil
}

// GetByID returns a design by ID (cache-first).
func (s *DesignService) GetByID(id string) (*content.DesignNode, error) {
	if id == "" {
		return nil, fmt.Errorf("design ID cannot be empty")
	}

	node, err := s.designRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get design %s: %w", id, err)
	}
	return node, nil
}

// GetAll returns every design (cache-first).
func (s *DesignService) GetAll() ([]*content.DesignNode, error) {
	nodes, err := s.designRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all designs: %w", err)
	}
	return nodes, nil
}

// Delete removes a design and its stored background media.
func (s *DesignService) Delete(id string) error {
	node, err := s.designRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to verify design %s exists: %w", id, err)
	}
	if node == nil {
		return fmt.Errorf("design %s not found", id)
	}

	if err := s.designRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete design %s: %w", id, err)
	}

	var urls []string
	if node.BackgroundImageURL != nil {
		urls = append(urls, *node.BackgroundImageURL)
	}
	if node.ThumbnailURL != nil {
		urls = append(urls, *node.ThumbnailURL)
	}
	if len(urls) > 0 {
		if err := s.images.RemoveBackgroundImage(urls...); err != nil {
			s.logger.Media().Warn("Failed to remove design media", "id", id, "error", err.Error())
		}
	}

	s.logger.Design().Info("Design deleted", "id", id)
	return nil
}

// SetBackgroundImage stores an uploaded base64 background for the design,
// rewrites the document's structural CSS, and persists the change.
func (s *DesignService) SetBackgroundImage(id, base64Data string) (*content.DesignNode, error) {
	node, err := s.designRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to verify design %s exists: %w", id, err)
	}
	if node == nil {
		return nil, fmt.Errorf("design %s not found", id)
	}

	backgroundURL, thumbnailURL, err := s.images.ProcessBackgroundImage(base64Data, id)
	if err != nil {
		return nil, fmt.Errorf("failed to process background image: %w", err)
	}

	// Replace previous media files, if any.
	var stale []string
	if node.BackgroundImageURL != nil {
		stale = append(stale, *node.BackgroundImageURL)
	}
	if node.ThumbnailURL != nil {
		stale = append(stale, *node.ThumbnailURL)
	}
	if len(stale) > 0 {
		if err := s.images.RemoveBackgroundImage(stale...); err != nil {
			s.logger.Media().Warn("Failed to remove stale design media", "id", id, "error", err.Error())
		}
	}

	node.BackgroundImageURL = &backgroundURL
	node.ThumbnailURL = &thumbnailURL
	s.adapter.ApplyBackground(node.Document, backgroundURL)
	now := time.Now().UTC()
	node.Changed = &now

	if err := s.designRepo.Update(node); err != nil {
		return nil, fmt.Errorf("failed to update design %s: %w", id, err)
	}

	s.broadcaster.BroadcastDesignUpdated(node.ID)
	s.logger.Media().Info("Design background updated", "id", id, "url", backgroundURL)
	return node, nil
}

// Package manager provides centralized cache operations by delegating to
// specialized stores.
package manager

import (
	"context"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/interfaces"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/stores"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/pkg/config"
)

// Interface assertion to ensure Manager implements the composed cache facade.
var _ interfaces.Cache = (*Manager)(nil)

// Manager delegates cache operations to the content and fragments stores.
type Manager struct {
	contentStore   *stores.ContentStore
	fragmentsStore *stores.FragmentsStore
	logger         *logging.ChanneledLogger
}

// NewManager creates the cache manager with its backing stores.
func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"content", "fragments"})
	}
	return &Manager{
		contentStore:   stores.NewContentStore(),
		fragmentsStore: stores.NewFragmentsStore(),
		logger:         logger,
	}
}

// Content store delegation.

func (m *Manager) GetDesign(id string) (*content.DesignNode, bool) { return m.contentStore.GetDesign(id) }
func (m *Manager) SetDesign(design *content.DesignNode)            { m.contentStore.SetDesign(design) }
func (m *Manager) GetAllDesignIDs() ([]string, bool)               { return m.contentStore.GetAllDesignIDs() }
func (m *Manager) SetAllDesignIDs(ids []string)                    { m.contentStore.SetAllDesignIDs(ids) }

// InvalidateDesign drops the design and every rendered fragment built on it.
func (m *Manager) InvalidateDesign(id string) {
	m.contentStore.InvalidateDesign(id)
	m.fragmentsStore.InvalidateFragmentsByDesign(id)
}

func (m *Manager) GetInvitation(id string) (*content.InvitationNode, bool) {
	return m.contentStore.GetInvitation(id)
}

func (m *Manager) SetInvitation(invitation *content.InvitationNode) {
	m.contentStore.SetInvitation(invitation)
}

func (m *Manager) GetInvitationBySlug(slug string) (*content.InvitationNode, bool) {
	return m.contentStore.GetInvitationBySlug(slug)
}

func (m *Manager) GetAllInvitationIDs() ([]string, bool) {
	return m.contentStore.GetAllInvitationIDs()
}

func (m *Manager) SetAllInvitationIDs(ids []string) { m.contentStore.SetAllInvitationIDs(ids) }

// InvalidateInvitation drops the invitation and its rendered fragment.
func (m *Manager) InvalidateInvitation(id string) {
	m.contentStore.InvalidateInvitation(id)
	m.fragmentsStore.InvalidateFragment(id)
}

func (m *Manager) GetGuest(id string) (*content.GuestNode, bool) { return m.contentStore.GetGuest(id) }
func (m *Manager) SetGuest(guest *content.GuestNode)             { m.contentStore.SetGuest(guest) }

func (m *Manager) GetGuestIDsByInvitation(invitationID string) ([]string, bool) {
	return m.contentStore.GetGuestIDsByInvitation(invitationID)
}

func (m *Manager) SetGuestIDsByInvitation(invitationID string, ids []string) {
	m.contentStore.SetGuestIDsByInvitation(invitationID, ids)
}

func (m *Manager) InvalidateGuests(invitationID string) {
	m.contentStore.InvalidateGuests(invitationID)
}

// Fragments store delegation.

func (m *Manager) GetRenderedFragment(invitationID string) (string, string, bool) {
	return m.fragmentsStore.GetRenderedFragment(invitationID)
}

func (m *Manager) SetRenderedFragment(invitationID, designID, html, css string) {
	m.fragmentsStore.SetRenderedFragment(invitationID, designID, html, css)
}

func (m *Manager) InvalidateFragment(invitationID string) {
	m.fragmentsStore.InvalidateFragment(invitationID)
}

func (m *Manager) InvalidateFragmentsByDesign(designID string) {
	m.fragmentsStore.InvalidateFragmentsByDesign(designID)
}

// StartCleanupWorker periodically sweeps expired fragments until ctx is
// cancelled.
func (m *Manager) StartCleanupWorker(ctx context.Context) {
	ticker := time.NewTicker(config.CacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if m.logger != nil {
				m.logger.Cache().Info("Cache cleanup worker stopped")
			}
			return
		case <-ticker.C:
			dropped := m.fragmentsStore.Sweep()
			if m.logger != nil && dropped > 0 {
				m.logger.Cache().Debug("Swept expired rendered fragments", "dropped", dropped)
			}
		}
	}
}

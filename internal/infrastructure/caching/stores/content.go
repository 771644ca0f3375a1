// Package stores provides concrete cache store implementations
package stores

import (
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/types"
	"github.com/InkVite/inkvite-go/pkg/config"
)

// ContentStore implements entity caching for designs, invitations, guests.
type ContentStore struct {
	cache *types.ContentCache
}

// NewContentStore creates a new content cache store
func NewContentStore() *ContentStore {
	return &ContentStore{cache: types.NewContentCache()}
}

func (cs *ContentStore) touch() {
	cs.cache.LastAccessed = time.Now().UTC()
}

// expired reports whether the content cache as a whole has outlived its TTL.
func (cs *ContentStore) expired() bool {
	return time.Since(cs.cache.LastAccessed) > config.ContentCacheTTL
}

// GetDesign retrieves a cached design by ID.
func (cs *ContentStore) GetDesign(id string) (*content.DesignNode, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	design, exists := cs.cache.Designs[id]
	return design, exists
}

// SetDesign caches a design.
func (cs *ContentStore) SetDesign(design *content.DesignNode) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.Designs[design.ID] = design
	cs.touch()
}

// GetAllDesignIDs returns the master design ID list when cached.
func (cs *ContentStore) GetAllDesignIDs() ([]string, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	if !cs.cache.HasDesignIDs {
		return nil, false
	}
	ids := make([]string, len(cs.cache.AllDesignIDs))
	copy(ids, cs.cache.AllDesignIDs)
	return ids, true
}

// SetAllDesignIDs caches the master design ID list.
func (cs *ContentStore) SetAllDesignIDs(ids []string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.AllDesignIDs = append([]string(nil), ids...)
	cs.cache.HasDesignIDs = true
	cs.touch()
}

// InvalidateDesign drops a design and the master ID list.
func (cs *ContentStore) InvalidateDesign(id string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	delete(cs.cache.Designs, id)
	cs.cache.AllDesignIDs = nil
	cs.cache.HasDesignIDs = false
}

// GetInvitation retrieves a cached invitation by ID.
func (cs *ContentStore) GetInvitation(id string) (*content.InvitationNode, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	invitation, exists := cs.cache.Invitations[id]
	return invitation, exists
}

// SetInvitation caches an invitation and its slug index entry.
func (cs *ContentStore) SetInvitation(invitation *content.InvitationNode) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.Invitations[invitation.ID] = invitation
	if invitation.Slug != "" {
		cs.cache.InvitationBySlug[invitation.Slug] = invitation.ID
	}
	cs.touch()
}

// GetInvitationBySlug resolves an invitation through the slug index.
func (cs *ContentStore) GetInvitationBySlug(slug string) (*content.InvitationNode, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	id, exists := cs.cache.InvitationBySlug[slug]
	if !exists {
		return nil, false
	}
	invitation, exists := cs.cache.Invitations[id]
	return invitation, exists
}

// GetAllInvitationIDs returns the master invitation ID list when cached.
func (cs *ContentStore) GetAllInvitationIDs() ([]string, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	if !cs.cache.HasInvitationIDs {
		return nil, false
	}
	ids := make([]string, len(cs.cache.AllInvitationIDs))
	copy(ids, cs.cache.AllInvitationIDs)
	return ids, true
}

// SetAllInvitationIDs caches the master invitation ID list.
func (cs *ContentStore) SetAllInvitationIDs(ids []string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.AllInvitationIDs = append([]string(nil), ids...)
	cs.cache.HasInvitationIDs = true
	cs.touch()
}

// InvalidateInvitation drops an invitation, its slug entry, and the master list.
func (cs *ContentStore) InvalidateInvitation(id string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	if invitation, exists := cs.cache.Invitations[id]; exists && invitation.Slug != "" {
		delete(cs.cache.InvitationBySlug, invitation.Slug)
	}
	delete(cs.cache.Invitations, id)
	cs.cache.AllInvitationIDs = nil
	cs.cache.HasInvitationIDs = false
}

// GetGuest retrieves a cached guest by ID.
func (cs *ContentStore) GetGuest(id string) (*content.GuestNode, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	guest, exists := cs.cache.Guests[id]
	return guest, exists
}

// SetGuest caches a guest.
func (cs *ContentStore) SetGuest(guest *content.GuestNode) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.Guests[guest.ID] = guest
	cs.touch()
}

// GetGuestIDsByInvitation returns the guest ID list for an invitation.
func (cs *ContentStore) GetGuestIDsByInvitation(invitationID string) ([]string, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	ids, exists := cs.cache.GuestsByInvitation[invitationID]
	if !exists {
		return nil, false
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, true
}

// SetGuestIDsByInvitation caches the guest ID list for an invitation.
func (cs *ContentStore) SetGuestIDsByInvitation(invitationID string, ids []string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.GuestsByInvitation[invitationID] = append([]string(nil), ids...)
	cs.touch()
}

// InvalidateGuests drops all guest cache state for an invitation.
func (cs *ContentStore) InvalidateGuests(invitationID string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	for _, id := range cs.cache.GuestsByInvitation[invitationID] {
		delete(cs.cache.Guests, id)
	}
	delete(cs.cache.GuestsByInvitation, invitationID)
}

// Purge drops everything. Used by the cleanup worker when the content TTL
// has elapsed without access.
func (cs *ContentStore) Purge() {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.Designs = make(map[string]*content.DesignNode)
	cs.cache.Invitations = make(map[string]*content.InvitationNode)
	cs.cache.Guests = make(map[string]*content.GuestNode)
	cs.cache.InvitationBySlug = make(map[string]string)
	cs.cache.GuestsByInvitation = make(map[string][]string)
	cs.cache.AllDesignIDs = nil
	cs.cache.AllInvitationIDs = nil
	cs.cache.HasDesignIDs = false
	cs.cache.HasInvitationIDs = false
}

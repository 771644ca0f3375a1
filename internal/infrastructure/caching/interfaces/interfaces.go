// Package interfaces defines cache operation contracts for content and
// rendered-fragment caching.
package interfaces

import (
	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
)

// ContentCache defines operations for content caching
type ContentCache interface {
	GetDesign(id string) (*content.DesignNode, bool)
	SetDesign(design *content.DesignNode)
	GetAllDesignIDs() ([]string, bool)
	SetAllDesignIDs(ids []string)
	InvalidateDesign(id string)

	GetInvitation(id string) (*content.InvitationNode, bool)
	SetInvitation(invitation *content.InvitationNode)
	GetInvitationBySlug(slug string) (*content.InvitationNode, bool)
	GetAllInvitationIDs() ([]string, bool)
	SetAllInvitationIDs(ids []string)
	InvalidateInvitation(id string)

	GetGuest(id string) (*content.GuestNode, bool)
	SetGuest(guest *content.GuestNode)
	GetGuestIDsByInvitation(invitationID string) ([]string, bool)
	SetGuestIDsByInvitation(invitationID string, ids []string)
	InvalidateGuests(invitationID string)
}

// FragmentCache defines operations for rendered invitation output caching
type FragmentCache interface {
	GetRenderedFragment(invitationID string) (html, css string, found bool)
	SetRenderedFragment(invitationID, designID, html, css string)
	InvalidateFragment(invitationID string)
	InvalidateFragmentsByDesign(designID string)
}

// Cache is the composed facade handed to repositories and services.
type Cache interface {
	ContentCache
	FragmentCache
}

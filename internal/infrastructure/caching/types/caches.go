// Package types defines the shared cache data structures.
package types

import (
	"sync"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
)

// ContentCache holds the in-memory entity caches plus the master ID lists.
type ContentCache struct {
	Mu sync.RWMutex

	Designs     map[string]*content.DesignNode
	Invitations map[string]*content.InvitationNode
	Guests      map[string]*content.GuestNode

	// InvitationBySlug indexes invitation IDs by slug for public pages.
	InvitationBySlug map[string]string
	// GuestsByInvitation indexes guest IDs per invitation.
	GuestsByInvitation map[string][]string

	AllDesignIDs     []string
	AllInvitationIDs []string

	HasDesignIDs     bool
	HasInvitationIDs bool

	LastAccessed time.Time
}

// NewContentCache creates an empty content cache.
func NewContentCache() *ContentCache {
	return &ContentCache{
		Designs:            make(map[string]*content.DesignNode),
		Invitations:        make(map[string]*content.InvitationNode),
		Guests:             make(map[string]*content.GuestNode),
		InvitationBySlug:   make(map[string]string),
		GuestsByInvitation: make(map[string][]string),
		LastAccessed:       time.Now().UTC(),
	}
}

// RenderedFragment is one cached render output for an invitation.
type RenderedFragment struct {
	HTML        string
	CSS         string
	DesignID    string
	LastUpdated time.Time
}

// FragmentCache holds rendered invitation fragments keyed by invitation ID.
type FragmentCache struct {
	Mu        sync.RWMutex
	Fragments map[string]*RenderedFragment
}

// NewFragmentCache creates an empty fragment cache.
func NewFragmentCache() *FragmentCache {
	return &FragmentCache{
		Fragments: make(map[string]*RenderedFragment),
	}
}

// Package repositories defines the repository interfaces for content entities.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
)

type DesignRepository interface {
	FindByID(id string) (*content.DesignNode, error)
	FindAll() ([]*content.DesignNode, error)
	FindByIDs(ids []string) ([]*content.DesignNode, error)
	Store(design *content.DesignNode) error
	Update(design *content.DesignNode) error
	Delete(id string) error
}

type InvitationRepository interface {
	FindByID(id string) (*content.InvitationNode, error)
	FindBySlug(slug string) (*content.InvitationNode, error)
	FindAll() ([]*content.InvitationNode, error)
	FindByIDs(ids []string) ([]*content.InvitationNode, error)
	Store(invitation *content.InvitationNode) error
	Update(invitation *content.InvitationNode) error
	Delete(id string) error
}

type GuestRepository interface {
	FindByID(id string) (*content.GuestNode, error)
	FindByInvitation(invitationID string) ([]*content.GuestNode, error)
	FindByInvitationAndEmail(invitationID, email string) (*content.GuestNode, error)
	Store(guest *content.GuestNode) error
	Update(guest *content.GuestNode) error
	Delete(id string) error
}

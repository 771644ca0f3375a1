// Package content defines the application's core content-related domain entities.
package content

import (
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
)

// DesignNode is a saved invitation design: the portable template document
// plus catalog metadata.
type DesignNode struct {
	ID                 string                   `json:"id"`
	Title              string                   `json:"title"`
	NodeType           string                   `json:"nodeType"`
	Document           *design.TemplateDocument `json:"document"`
	BackgroundImageURL *string                  `json:"backgroundImageUrl,omitempty"`
	ThumbnailURL       *string                  `json:"thumbnailUrl,omitempty"`
	Created            time.Time                `json:"created"`
	Changed            *time.Time               `json:"changed,omitempty"`
}

// InvitationNode is one event invitation bound to a design. EventData holds
// the free-form token values the render engine substitutes; the typed
// fields below are the canonical tokens every invitation carries.
type InvitationNode struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	NodeType   string            `json:"nodeType"`
	Slug       string            `json:"slug"`
	DesignID   string            `json:"designId"`
	EventDate  *time.Time        `json:"eventDate,omitempty"`
	EventTime  *string           `json:"eventTime,omitempty"`
	Location   *string           `json:"location,omitempty"`
	CustomText *string           `json:"customText,omitempty"`
	MoreInfo   *string           `json:"moreInfo,omitempty"`
	EventData  map[string]string `json:"eventData,omitempty"`
	Created    time.Time         `json:"created"`
	Changed    *time.Time        `json:"changed,omitempty"`
}

// RSVP status values for a guest.
const (
	RSVPPending   = "pending"
	RSVPAttending = "attending"
	RSVPDeclined  = "declined"
)

// GuestNode is one guest on an invitation's list, including their RSVP.
type GuestNode struct {
	ID           string     `json:"id"`
	InvitationID string     `json:"invitationId"`
	NodeType     string     `json:"nodeType"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Status       string     `json:"status"`
	PlusOnes     int        `json:"plusOnes"`
	Message      *string    `json:"message,omitempty"`
	RespondedAt  *time.Time `json:"respondedAt,omitempty"`
	Created      time.Time  `json:"created"`
}

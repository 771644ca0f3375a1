package services

import (
	"testing"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildEventDataTypedFieldsWinOverFreeForm(t *testing.T) {
	date := time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC)
	invitation := &content.InvitationNode{
		ID:        "inv-1",
		Title:     "Emma & Lucas",
		EventDate: &date,
		EventTime: strPtr("4:00 PM"),
		Location:  strPtr("Rosewood Gardens"),
		EventData: map[string]string{
			"eventTitle": "stale title",
			"dressCode":  "garden formal",
		},
	}

	data := BuildEventData(invitation)

	assert.Equal(t, "Emma & Lucas", data["eventTitle"])
	assert.Equal(t, "June 20, 2026", data["eventDate"])
	assert.Equal(t, "20", data["eventDay"])
	assert.Equal(t, "June", data["eventMonth"])
	assert.Equal(t, "2026", data["eventYear"])
	assert.Equal(t, "4:00 PM", data["eventTime"])
	assert.Equal(t, "Rosewood Gardens", data["location"])

	// Free-form keys without a typed counterpart pass through untouched.
	assert.Equal(t, "garden formal", data["dressCode"])
}

func TestBuildEventDataOmitsUnsetFields(t *testing.T) {
	invitation := &content.InvitationNode{ID: "inv-2", Title: "Book Club"}

	data := BuildEventData(invitation)

	assert.Equal(t, "Book Club", data["eventTitle"])
	_, hasDate := data["eventDate"]
	assert.False(t, hasDate)
	_, hasLocation := data["location"]
	assert.False(t, hasLocation)
}

package manager

import (
	"testing"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignRoundTrip(t *testing.T) {
	m := NewManager(nil)

	_, found := m.GetDesign("d1")
	assert.False(t, found)

	m.SetDesign(&content.DesignNode{ID: "d1", Title: "Garden Wedding"})
	node, found := m.GetDesign("d1")
	require.True(t, found)
	assert.Equal(t, "Garden Wedding", node.Title)
}

func TestInvalidateDesignDropsDependentFragments(t *testing.T) {
	m := NewManager(nil)

	m.SetRenderedFragment("inv-1", "d1", "<div>a</div>", ".a {}")
	m.SetRenderedFragment("inv-2", "d1", "<div>b</div>", ".b {}")
	m.SetRenderedFragment("inv-3", "d2", "<div>c</div>", ".c {}")

	m.InvalidateDesign("d1")

	_, _, found := m.GetRenderedFragment("inv-1")
	assert.False(t, found)
	_, _, found = m.GetRenderedFragment("inv-2")
	assert.False(t, found)

	html, css, found := m.GetRenderedFragment("inv-3")
	require.True(t, found)
	assert.Equal(t, "<div>c</div>", html)
	assert.Equal(t, ".c {}", css)
}

func TestInvalidateInvitationDropsItsFragment(t *testing.T) {
	m := NewManager(nil)

	m.SetInvitation(&content.InvitationNode{ID: "inv-1", Slug: "emma-lucas"})
	m.SetRenderedFragment("inv-1", "d1", "<div></div>", "")

	m.InvalidateInvitation("inv-1")

	_, found := m.GetInvitation("inv-1")
	assert.False(t, found)
	_, found = m.GetInvitationBySlug("emma-lucas")
	assert.False(t, found)
	_, _, found = m.GetRenderedFragment("inv-1")
	assert.False(t, found)
}

func TestInvitationSlugIndex(t *testing.T) {
	m := NewManager(nil)

	m.SetInvitation(&content.InvitationNode{ID: "inv-1", Slug: "garden-party"})

	node, found := m.GetInvitationBySlug("garden-party")
	require.True(t, found)
	assert.Equal(t, "inv-1", node.ID)

	_, found = m.GetInvitationBySlug("missing")
	assert.False(t, found)
}

func TestGuestListInvalidation(t *testing.T) {
	m := NewManager(nil)

	m.SetGuest(&content.GuestNode{ID: "g1", InvitationID: "inv-1"})
	m.SetGuest(&content.GuestNode{ID: "g2", InvitationID: "inv-1"})
	m.SetGuestIDsByInvitation("inv-1", []string{"g1", "g2"})

	ids, found := m.GetGuestIDsByInvitation("inv-1")
	require.True(t, found)
	assert.Len(t, ids, 2)

	m.InvalidateGuests("inv-1")

	_, found = m.GetGuestIDsByInvitation("inv-1")
	assert.False(t, found)
	_, found = m.GetGuest("g1")
	assert.False(t, found)
}

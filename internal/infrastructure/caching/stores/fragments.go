package stores

import (
	"time"

	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/types"
	"github.com/InkVite/inkvite-go/pkg/config"
)

// FragmentsStore caches rendered invitation output so the guest-facing page
// does not re-run the render engine on every hit.
type FragmentsStore struct {
	cache *types.FragmentCache
}

// NewFragmentsStore creates a new fragments cache store
func NewFragmentsStore() *FragmentsStore {
	return &FragmentsStore{cache: types.NewFragmentCache()}
}

// GetRenderedFragment retrieves a cached render for an invitation.
func (fs *FragmentsStore) GetRenderedFragment(invitationID string) (string, string, bool) {
	fs.cache.Mu.RLock()
	defer fs.cache.Mu.RUnlock()

	fragment, exists := fs.cache.Fragments[invitationID]
	if !exists {
		return "", "", false
	}
	if time.Since(fragment.LastUpdated) > config.RenderCacheTTL {
		return "", "", false
	}
	return fragment.HTML, fragment.CSS, true
}

// SetRenderedFragment stores a rendered invitation.
func (fs *FragmentsStore) SetRenderedFragment(invitationID, designID, html, css string) {
	fs.cache.Mu.Lock()
	defer fs.cache.Mu.Unlock()

	fs.cache.Fragments[invitationID] = &types.RenderedFragment{
		HTML:        html,
		CSS:         css,
		DesignID:    designID,
		LastUpdated: time.Now().UTC(),
	}
}

// InvalidateFragment drops the cached render for one invitation.
func (fs *FragmentsStore) InvalidateFragment(invitationID string) {
	fs.cache.Mu.Lock()
	defer fs.cache.Mu.Unlock()
	delete(fs.cache.Fragments, invitationID)
}

// InvalidateFragmentsByDesign drops every cached render that depends on the
// given design. Called when a design document is re-converted.
func (fs *FragmentsStore) InvalidateFragmentsByDesign(designID string) {
	fs.cache.Mu.Lock()
	defer fs.cache.Mu.Unlock()
	for invitationID, fragment := range fs.cache.Fragments {
		if fragment.DesignID == designID {
			delete(fs.cache.Fragments, invitationID)
		}
	}
}

// Sweep removes expired fragments and reports how many were dropped.
func (fs *FragmentsStore) Sweep() int {
	fs.cache.Mu.Lock()
	defer fs.cache.Mu.Unlock()

	dropped := 0
	for invitationID, fragment := range fs.cache.Fragments {
		if time.Since(fragment.LastUpdated) > config.RenderCacheTTL {
			delete(fs.cache.Fragments, invitationID)
			dropped++
		}
	}
	return dropped
}

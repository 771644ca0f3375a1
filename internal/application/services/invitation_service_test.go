package services

import (
	"log/slog"
	"testing"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesignRepo struct {
	nodes map[string]*content.DesignNode
}

func (r *fakeDesignRepo) FindByID(id string) (*content.DesignNode, error) {
	return r.nodes[id], nil
}

func (r *fakeDesignRepo) FindAll() ([]*content.DesignNode, error) { return nil, nil }

func (r *fakeDesignRepo) FindByIDs(ids []string) ([]*content.DesignNode, error) { return nil, nil }

func (r *fakeDesignRepo) Store(node *content.DesignNode) error {
	r.nodes[node.ID] = node
	return nil
}

func (r *fakeDesignRepo) Update(node *content.DesignNode) error {
	r.nodes[node.ID] = node
	return nil
}

func (r *fakeDesignRepo) Delete(id string) error {
	delete(r.nodes, id)
	return nil
}

type fakeInvitationRepo struct {
	nodes map[string]*content.InvitationNode
}

func (r *fakeInvitationRepo) FindByID(id string) (*content.InvitationNode, error) {
	return r.nodes[id], nil
}

func (r *fakeInvitationRepo) FindBySlug(slug string) (*content.InvitationNode, error) {
	for _, node := range r.nodes {
		if node.Slug == slug {
			return node, nil
		}
	}
	return nil, nil
}

func (r *fakeInvitationRepo) FindAll() ([]*content.InvitationNode, error) { return nil, nil }

func (r *fakeInvitationRepo) FindByIDs(ids []string) ([]*content.InvitationNode, error) {
	return nil, nil
}

func (r *fakeInvitationRepo) Store(node *content.InvitationNode) error {
	r.nodes[node.ID] = node
	return nil
}

func (r *fakeInvitationRepo) Update(node *content.InvitationNode) error {
	r.nodes[node.ID] = node
	return nil
}

func (r *fakeInvitationRepo) Delete(id string) error {
	delete(r.nodes, id)
	return nil
}

func newTestInvitationService(t *testing.T) (*InvitationService, *fakeInvitationRepo, *fakeDesignRepo) {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		DefaultLevel:  slog.LevelError,
		ChannelLevels: map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)

	invitationRepo := &fakeInvitationRepo{nodes: map[string]*content.InvitationNode{}}
	designRepo := &fakeDesignRepo{nodes: map[string]*content.DesignNode{
		"design-1": {ID: "design-1", Title: "Garden"},
	}}
	return NewInvitationService(invitationRepo, designRepo, logger), invitationRepo, designRepo
}

func TestCreateInvitationDerivesSlugFromTitle(t *testing.T) {
	svc, _, _ := newTestInvitationService(t)

	created, err := svc.Create(&content.InvitationNode{
		Title:    "Emma & Lucas' Wedding!",
		DesignID: "design-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "emma-lucas-wedding", created.Slug)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Invitation", created.NodeType)
}

func TestCreateInvitationSlugCollisionGetsSuffix(t *testing.T) {
	svc, repo, _ := newTestInvitationService(t)

	repo.nodes["existing"] = &content.InvitationNode{ID: "existing", Slug: "garden-party"}

	created, err := svc.Create(&content.InvitationNode{
		Title:    "Garden Party",
		DesignID: "design-1",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "garden-party", created.Slug)
	assert.True(t, len(created.Slug) > len("garden-party"))
	assert.Contains(t, created.Slug, "garden-party-")
}

func TestCreateInvitationRejectsTakenExplicitSlug(t *testing.T) {
	svc, repo, _ := newTestInvitationService(t)

	repo.nodes["existing"] = &content.InvitationNode{ID: "existing", Slug: "taken"}

	_, err := svc.Create(&content.InvitationNode{
		Title:    "Another Event",
		Slug:     "taken",
		DesignID: "design-1",
	})
	assert.Error(t, err)
}

func TestCreateInvitationRequiresExistingDesign(t *testing.T) {
	svc, _, _ := newTestInvitationService(t)

	_, err := svc.Create(&content.InvitationNode{
		Title:    "Orphan Event",
		DesignID: "missing-design",
	})
	assert.Error(t, err)
}

func TestUpdateInvitationPreservesSlugAndCreated(t *testing.T) {
	svc, repo, _ := newTestInvitationService(t)

	created, err := svc.Create(&content.InvitationNode{
		Title:    "Book Club",
		DesignID: "design-1",
	})
	require.NoError(t, err)

	err = svc.Update(&content.InvitationNode{
		ID:    created.ID,
		Title: "Book Club Finale",
	})
	require.NoError(t, err)

	updated := repo.nodes[created.ID]
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.Created, updated.Created)
	assert.Equal(t, "design-1", updated.DesignID)
	require.NotNil(t, updated.Changed)
}

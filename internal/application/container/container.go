// Package container provides dependency injection for all singleton services
package container

import (
	"database/sql"

	"github.com/InkVite/inkvite-go/internal/application/services"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/manager"
	"github.com/InkVite/inkvite-go/internal/infrastructure/email"
	"github.com/InkVite/inkvite-go/internal/infrastructure/media"
	"github.com/InkVite/inkvite-go/internal/infrastructure/messaging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/performance"
	persistence "github.com/InkVite/inkvite-go/internal/infrastructure/persistence/content"
	"github.com/InkVite/inkvite-go/internal/presentation/templates"
	"github.com/InkVite/inkvite-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services (stateless singletons)
	DesignService     *services.DesignService
	RenderService     *services.RenderService
	InvitationService *services.InvitationService
	GuestService      *services.GuestService
	AuthService       *services.AuthService

	// Infrastructure Dependencies
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
	CacheManager *manager.Manager
	Broadcaster  *messaging.PreviewBroadcaster
	DB           *sql.DB
}

// NewContainer creates and wires all singleton services
func NewContainer(db *sql.DB, logger *logging.ChanneledLogger, cacheManager *manager.Manager) *Container {
	broadcaster := messaging.NewPreviewBroadcaster(logger)
	imageProcessor := media.NewImageProcessor(config.MediaBasePath)

	designRepo := persistence.NewDesignRepository(db, cacheManager, logger)
	invitationRepo := persistence.NewInvitationRepository(db, cacheManager, logger)
	guestRepo := persistence.NewGuestRepository(db, cacheManager, logger)

	adapter := templates.NewAdapter()
	engine := templates.NewEngine()

	// Email is optional: without an API key RSVP confirmations are skipped.
	emailService, err := email.NewService()
	if err != nil {
		logger.Email().Warn("Email service disabled", "reason", err.Error())
		emailService = nil
	}

	return &Container{
		DesignService:     services.NewDesignService(designRepo, adapter, imageProcessor, broadcaster, logger),
		RenderService:     services.NewRenderService(invitationRepo, designRepo, engine, cacheManager, logger),
		InvitationService: services.NewInvitationService(invitationRepo, designRepo, logger),
		GuestService:      services.NewGuestService(guestRepo, invitationRepo, emailService, broadcaster, logger),
		AuthService:       services.NewAuthService(logger),

		Logger:       logger,
		PerfTracker:  performance.NewTracker(),
		CacheManager: cacheManager,
		Broadcaster:  broadcaster,
		DB:           db,
	}
}

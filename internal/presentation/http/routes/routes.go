// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/InkVite/inkvite-go/internal/application/container"
	"github.com/InkVite/inkvite-go/internal/presentation/http/handlers"
	"github.com/InkVite/inkvite-go/internal/presentation/http/middleware"
	"github.com/InkVite/inkvite-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Uploaded backgrounds and thumbnails are served straight from disk.
	r.Static("/media", config.MediaBasePath)

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	designHandlers := handlers.NewDesignHandlers(container.DesignService, container.Logger, container.PerfTracker)
	renderHandlers := handlers.NewRenderHandlers(container.RenderService, container.Logger, container.PerfTracker)
	invitationHandlers := handlers.NewInvitationHandlers(container.InvitationService, container.Logger, container.PerfTracker)
	guestHandlers := handlers.NewGuestHandlers(container.GuestService, container.InvitationService, container.Logger, container.PerfTracker)
	previewHandlers := handlers.NewPreviewHandlers(container.Broadcaster, container.Logger)

	api := r.Group("/api/v1")
	{
		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		// Public guest-facing endpoints, addressed by invitation slug.
		public := api.Group("/public")
		{
			public.GET("/invitations/:slug", invitationHandlers.GetInvitationBySlug)
			public.GET("/invitations/:slug/render", renderHandlers.GetPublicRender)
			public.POST("/invitations/:slug/rsvp", guestHandlers.PostRSVP)
		}

		// Admin endpoints
		admin := api.Group("")
		admin.Use(authHandlers.AuthMiddleware())
		{
			designs := admin.Group("/designs")
			{
				designs.POST("/convert", designHandlers.PostConvert)
				designs.POST("/validate", designHandlers.PostValidate)
				designs.POST("", designHandlers.CreateDesign)
				designs.GET("", designHandlers.GetAllDesigns)
				designs.GET("/:id", designHandlers.GetDesignByID)
				designs.PUT("/:id", designHandlers.UpdateDesign)
				designs.DELETE("/:id", designHandlers.DeleteDesign)
				designs.POST("/:id/background", designHandlers.PostBackgroundImage)
			}

			admin.POST("/render/preview", renderHandlers.PostPreview)

			invitations := admin.Group("/invitations")
			{
				invitations.POST("", invitationHandlers.CreateInvitation)
				invitations.GET("", invitationHandlers.GetAllInvitations)
				invitations.GET("/:id", invitationHandlers.GetInvitationByID)
				invitations.PUT("/:id", invitationHandlers.UpdateInvitation)
				invitations.DELETE("/:id", invitationHandlers.DeleteInvitation)
				invitations.GET("/:id/render", renderHandlers.GetInvitationRender)
				invitations.GET("/:id/guests", guestHandlers.GetGuests)
				invitations.POST("/:id/guests", guestHandlers.AddGuest)
			}

			admin.DELETE("/guests/:guestId", guestHandlers.DeleteGuest)

			// Live preview websocket (token accepted via query parameter).
			admin.GET("/preview/ws", previewHandlers.GetPreviewSocket)
		}
	}

	return r
}

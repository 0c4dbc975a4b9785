package routes

import (
	"github.com/gin-gonic/gin"

	"lexhub_backend/internal/handlers"
	"lexhub_backend/internal/middleware"
)

// RegisterRoutes mounts the whole API under /api. Public endpoints come
// first; everything behind AuthMiddleware requires a session.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := router.Group("/api")
	{
		appHandlers.Auth.RegisterRoutes(api)      // /auth: register, login, refresh, google
		appHandlers.Directory.RegisterRoutes(api) // /directory: public search, profile, contact
		appHandlers.Billing.RegisterRoutes(api)   // /stripe/webhook: signed by the provider
		appHandlers.Files.RegisterRoutes(api)     // /files: stored documents
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		appHandlers.Auth.RegisterProtectedRoutes(protected)    // /auth: logout, change-password, me
		appHandlers.Users.RegisterRoutes(protected)            // /users/me
		appHandlers.Lawyers.RegisterRoutes(protected)          // /lawyers/me: steps, submit, inbox
		appHandlers.Admin.RegisterRoutes(protected)            // /admin: users, reviews, stats
		appHandlers.Billing.RegisterProtectedRoutes(protected) // /stripe/checkout
	}
}

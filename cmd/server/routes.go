package main

import (
	"github.com/gigflow/backend/internal/config"
	"github.com/gigflow/backend/internal/middleware"
	"github.com/gigflow/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS(cfg.CORS.Origin))

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Hired notification stream (token validated in the handler, since
		// EventSource clients pass it as a query parameter)
		api.GET("/events", svc.eventsHandler.Stream)

		// Public gig routes
		api.GET("/gigs", svc.gigHandler.List)
		api.GET("/gigs/:id", svc.gigHandler.GetByID)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Gigs
			protected.POST("/gigs", svc.gigHandler.Create)
			protected.GET("/gigs/my/posted", svc.gigHandler.MyPosted)
			protected.PUT("/gigs/:id", svc.gigHandler.Update)
			protected.DELETE("/gigs/:id", svc.gigHandler.Delete)

			// Bids. The :id parameter is the gig for the list route and
			// the bid for the hire route.
			protected.POST("/bids", svc.bidHandler.Create)
			protected.GET("/bids/my/submitted", svc.bidHandler.MySubmitted)
			protected.GET("/bids/:id", svc.bidHandler.ListForGig)
			protected.PATCH("/bids/:id/hire", svc.bidHandler.Hire)
		}
	}
}

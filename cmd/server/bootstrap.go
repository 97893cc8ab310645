package main

import (
	"github.com/gigflow/backend/internal/config"
	"github.com/gigflow/backend/internal/handlers"
	"github.com/gigflow/backend/internal/models"
	"github.com/gigflow/backend/internal/services"
	"github.com/gigflow/backend/internal/utils"
	"github.com/gigflow/backend/pkg/logger"
)

// appServices holds all initialized handlers needed by the application.
type appServices struct {
	hub           *services.NotifyHub
	authHandler   *handlers.AuthHandler
	gigHandler    *handlers.GigHandler
	bidHandler    *handlers.BidHandler
	eventsHandler *handlers.EventsHandler
	healthHandler *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, hub, handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	hub := services.GetNotifyHub()

	return &appServices{
		hub:           hub,
		authHandler:   handlers.NewAuthHandler(db, cfg),
		gigHandler:    handlers.NewGigHandler(db),
		bidHandler:    handlers.NewBidHandler(db, hub),
		eventsHandler: handlers.NewEventsHandler(hub),
		healthHandler: handlers.NewHealthHandler(),
	}
}

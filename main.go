package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/taskdesk/taskdesk-be/internal/api"
	"github.com/taskdesk/taskdesk-be/internal/auth"
	"github.com/taskdesk/taskdesk-be/internal/config"
	"github.com/taskdesk/taskdesk-be/internal/database"
	"github.com/taskdesk/taskdesk-be/internal/logger"
	"github.com/taskdesk/taskdesk-be/internal/monitoring"
	"github.com/taskdesk/taskdesk-be/internal/services"
	"github.com/taskdesk/taskdesk-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration; a missing JWT_SECRET is fatal here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket hub for the audit event feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	authn := auth.New(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(db, cfg.BcryptCost)
	taskService := services.NewTaskService(db)
	eventService := services.NewEventService(db, hub)

	// Set up and run the background retention pruner
	pruner, err := monitoring.NewPruner(eventService, cfg.PruneSchedule, cfg.EventRetention)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.PruneSchedule).Msg("Invalid prune schedule")
	}
	go pruner.Run()

	// Set up router
	router := api.NewRouter(authn, userService, taskService, eventService, hub, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

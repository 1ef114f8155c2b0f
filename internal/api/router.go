package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/taskdesk/taskdesk-be/internal/api/handlers"
	"github.com/taskdesk/taskdesk-be/internal/auth"
	"github.com/taskdesk/taskdesk-be/internal/services"
	"github.com/taskdesk/taskdesk-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	authn *auth.Authenticator,
	userService services.UserServiceProvider,
	taskService services.TaskServiceProvider,
	eventService services.EventServiceProvider,
	hub *websocket.Hub,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the SPA frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, authn, eventService)
	taskHandler := handlers.NewTaskHandler(taskService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Live audit event feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(authn.Middleware()).Get("/me", authHandler.Me)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authn.Middleware())
			r.Get("/", taskHandler.GetAll)
			r.Post("/", taskHandler.Create)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})

		r.With(authn.Middleware()).Get("/events", eventHandler.GetRecent)
	})

	return r
}

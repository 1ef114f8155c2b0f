package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskdesk/taskdesk-be/internal/auth"
	"github.com/taskdesk/taskdesk-be/internal/services"
)

// AuthHandler handles registration, login and the identity endpoint.
type AuthHandler struct {
	users  services.UserServiceProvider
	authn  *auth.Authenticator
	events services.EventServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, authn *auth.Authenticator, events services.EventServiceProvider) *AuthHandler {
	return &AuthHandler{users: users, authn: authn, events: events}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     *string `json:"role"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	user, err := h.users.CreateUser(ctx, payload.Name, payload.Email, payload.Password, payload.Role)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.authn.Issue(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.record("user.registered", fmt.Sprintf("User %s registered", user.Email))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered",
		"user":    user,
		"token":   token,
	})
}

// Login handles user authentication and token generation. An unknown email
// and a wrong password produce the same response on purpose.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	user, err := h.users.AuthenticateUser(ctx, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Login failed")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.authn.Issue(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.record("user.login", fmt.Sprintf("User %s logged in", user.Email))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Me returns the identity claims attached by the authorization gate. This is
// the token's issue-time snapshot, not a fresh read of the store.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": claims})
}

// record writes an audit event on a fresh timeout context; a failed write is
// logged and never fails the request it annotates.
func (h *AuthHandler) record(eventType, message string) {
	if h.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := h.events.Record(ctx, eventType, "info", message); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
}

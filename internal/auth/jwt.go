package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskdesk/taskdesk-be/internal/models"
)

// Claims defines the JWT claims structure embedded in every issued token.
// It is a snapshot of the user at issue time; the gate never re-reads the
// store, so a token stays valid for its full lifetime even if the account
// changes underneath it.
type Claims struct {
	UserID int64   `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Role   *string `json:"role"`
	jwt.RegisteredClaims
}

// userClaimsKey is the context key for user claims.
type contextKey string

const userClaimsKey = contextKey("userClaims")

// Authenticator issues and verifies signed bearer tokens. The signing secret
// and token lifetime are fixed at construction and never change afterwards.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

// New creates an Authenticator with the given signing secret and token TTL.
func New(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

// Issue creates a new signed token for a given user.
func (a *Authenticator) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify parses and validates a token string, including signature and expiry.
func (a *Authenticator) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware creates a middleware for protecting routes.
//
// The Authorization header must consist of exactly two whitespace-separated
// fields; the second is taken as the token. The scheme word itself is not
// inspected.
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 {
				unauthorized(w, "Malformed authorization header")
				return
			}

			claims, err := a.Verify(parts[1])
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			// Pass claims down via context
			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the claims attached by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

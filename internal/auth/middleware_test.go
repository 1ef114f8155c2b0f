package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk-be/internal/models"
)

// protectedHandler echoes the claims the gate attached, or 500 if missing.
func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(claims)
	})
}

func doGateRequest(t *testing.T, a *Authenticator, header string) *httptest.ResponseRecorder {
	t.Helper()
	handler := a.Middleware()(protectedHandler(t))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	a := New("secret", time.Hour)
	rec := doGateRequest(t, a, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization header", errorBody(t, rec))
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	t.Parallel()

	a := New("secret", time.Hour)
	token, err := a.Issue(models.User{ID: 1, Name: "Ann", Email: "a@x.com"})
	require.NoError(t, err)

	for _, header := range []string{"Bearer", token, "Bearer " + token + " extra"} {
		rec := doGateRequest(t, a, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "Malformed authorization header", errorBody(t, rec), "header %q", header)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()

	a := New("secret", time.Hour)

	// Signed with a different secret.
	other := New("other-secret", time.Hour)
	forged, err := other.Issue(models.User{ID: 1, Name: "Eve", Email: "e@x.com"})
	require.NoError(t, err)

	rec := doGateRequest(t, a, "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", errorBody(t, rec))
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()

	expired := New("secret", -1*time.Minute)
	token, err := expired.Issue(models.User{ID: 1, Name: "Ann", Email: "a@x.com"})
	require.NoError(t, err)

	a := New("secret", time.Hour)
	rec := doGateRequest(t, a, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", errorBody(t, rec))
}

func TestMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	a := New("secret", time.Hour)
	token, err := a.Issue(models.User{ID: 7, Name: "Ann", Email: "a@x.com"})
	require.NoError(t, err)

	rec := doGateRequest(t, a, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var claims Claims
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claims))
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

// The scheme word is not inspected; any two-field header with a valid token
// passes the gate.
func TestMiddleware_SchemeNotChecked(t *testing.T) {
	t.Parallel()

	a := New("secret", time.Hour)
	token, err := a.Issue(models.User{ID: 7, Name: "Ann", Email: "a@x.com"})
	require.NoError(t, err)

	rec := doGateRequest(t, a, "Token "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

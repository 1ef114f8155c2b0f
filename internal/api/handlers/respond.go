package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// storeTimeout bounds every store call made on behalf of a request.
const storeTimeout = 5 * time.Second

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes the {"error": msg} body the frontend expects. Internal
// detail stays in the logs.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

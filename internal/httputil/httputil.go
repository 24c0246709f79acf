package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes v as a JSON response body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] failed to encode response: %v", err)
	}
}

// RespondError writes a {"error": message} body with the given status code.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondMessage writes a {"message": message} body with a 200 status.
func RespondMessage(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusOK, map[string]string{"message": message})
}

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "hosteria/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// respondError maps a service error to its HTTP status. Anything that is not
// an HTTPError is a 500 with a generic body; the real cause only goes to the
// log.
func respondError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		respondJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}
	log.Printf("internal error: %v", err)
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error interno del servidor"})
}

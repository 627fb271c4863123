package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/AsukaFurukawa/MyBlog/internal/blog"
	"github.com/AsukaFurukawa/MyBlog/internal/storage"
)

func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondOpError maps repository errors onto the HTTP taxonomy:
// validation failures are 400, unresolved ids 404, anything else is a
// storage failure reported as 500. Errors are terminal per request.
func respondOpError(w http.ResponseWriter, err error, fallback string) {
	var vErr *blog.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		log.Printf("%s: %v", fallback, err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

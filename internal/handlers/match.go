// internal/handlers/match.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/jason-s-yu/pairup/internal/store"
)

// ListMatchesHandler returns every recorded match.
func ListMatchesHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ms.Matches.List())
	}
}

// GetMatchHandler returns one match by id.
func GetMatchHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := ms.Matches.Get(id)
		if errors.Is(err, store.ErrNotFound) {
			writeText(w, http.StatusNotFound, "Match not found")
			return
		} else if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

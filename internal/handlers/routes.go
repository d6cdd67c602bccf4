// internal/handlers/routes.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts every pairup endpoint on r.
func RegisterRoutes(r *mux.Router, ms *MatchServer) {
	r.HandleFunc("/health", HealthHandler(ms)).Methods(http.MethodGet)

	r.HandleFunc("/profiles", CreateProfileHandler(ms)).Methods(http.MethodPost)
	r.HandleFunc("/profiles/{id}", GetProfileHandler(ms)).Methods(http.MethodGet)
	r.HandleFunc("/profiles/{id}/matches", ListProfileMatchesHandler(ms)).Methods(http.MethodGet)

	r.HandleFunc("/queue", GetQueueHandler(ms)).Methods(http.MethodGet)
	r.HandleFunc("/queue/enqueue", EnqueueHandler(ms)).Methods(http.MethodPost)
	r.HandleFunc("/queue/leave", LeaveQueueHandler(ms)).Methods(http.MethodPost)
	r.HandleFunc("/queue/ws/{profile_id}", QueueWSHandler(ms)).Methods(http.MethodGet)

	r.HandleFunc("/matches", ListMatchesHandler(ms)).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}", GetMatchHandler(ms)).Methods(http.MethodGet)
}

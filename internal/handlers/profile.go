// internal/handlers/profile.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jason-s-yu/pairup/internal/store"
	"github.com/sirupsen/logrus"
)

type createProfileRequest struct {
	Name string `json:"name"`
}

// CreateProfileHandler registers a new profile. The name is stored as sent and need not be unique.
func CreateProfileHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad profile request payload", http.StatusBadRequest)
			return
		}
		p, err := ms.Profiles.Register(req.Name)
		if err != nil {
			ms.Logger.WithError(err).Error("failed to register profile")
			http.Error(w, "could not create profile", http.StatusInternalServerError)
			return
		}

		ms.Logger.WithFields(logrus.Fields{
			"profile_id": p.ID,
			"name":       p.Name,
		}).Debug("profile registered")
		writeJSON(w, http.StatusCreated, p)
	}
}

// GetProfileHandler returns a single profile by id.
func GetProfileHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := ms.Profiles.Lookup(id)
		if errors.Is(err, store.ErrNotFound) {
			writeText(w, http.StatusNotFound, "Profile not found")
			return
		} else if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// ListProfileMatchesHandler returns every match the profile took part in.
func ListProfileMatchesHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !ms.Profiles.Exists(id) {
			writeText(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeJSON(w, http.StatusOK, ms.Matches.ListForProfile(id))
	}
}

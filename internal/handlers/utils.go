package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// queueRequest is the body of /queue/enqueue and /queue/leave.
type queueRequest struct {
	ProfileID string `json:"profile_id"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeText sends a short plain-text acknowledgment.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

// pathID parses the named route variable as a uuid.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("missing %s", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// decodeQueueRequest reads {"profile_id": "..."} from the body.
func decodeQueueRequest(r *http.Request) (uuid.UUID, error) {
	var req queueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return uuid.Nil, errors.New("empty payload")
		}
		return uuid.Nil, fmt.Errorf("invalid payload: %w", err)
	}
	id, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return uuid.Nil, errors.New("invalid profile_id")
	}
	return id, nil
}

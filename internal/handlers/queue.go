// internal/handlers/queue.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/jason-s-yu/pairup/internal/queue"
	"github.com/sirupsen/logrus"
)

// EnqueueHandler joins the caller to the wait list or pairs them immediately.
//
//	201 + match JSON   paired with a waiting opponent
//	202 "Enqueued"     now waiting
//	200 "Already in queue"
func EnqueueHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := decodeQueueRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := ms.Queue.JoinOrPair(profileID)
		if errors.Is(err, queue.ErrUnknownProfile) {
			writeText(w, http.StatusBadRequest, "Profile does not exist")
			return
		} else if err != nil {
			ms.Logger.WithError(err).WithField("profile_id", profileID).Error("join failed")
			http.Error(w, "could not join queue", http.StatusInternalServerError)
			return
		}

		switch res.Outcome {
		case queue.Paired:
			writeJSON(w, http.StatusCreated, res.Match)
		case queue.Enqueued:
			writeText(w, http.StatusAccepted, "Enqueued")
		case queue.AlreadyQueued:
			writeText(w, http.StatusOK, "Already in queue")
		default:
			ms.Logger.WithFields(logrus.Fields{
				"profile_id": profileID,
				"outcome":    res.Outcome,
			}).Error("unexpected join outcome")
			http.Error(w, "unexpected join outcome", http.StatusInternalServerError)
		}
	}
}

// LeaveQueueHandler removes the caller from the wait list.
func LeaveQueueHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := decodeQueueRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := ms.Queue.Leave(profileID); err != nil {
			if errors.Is(err, queue.ErrNotQueued) {
				writeText(w, http.StatusBadRequest, "Not in queue")
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeText(w, http.StatusOK, "Removed from queue")
	}
}

// GetQueueHandler lists waiting profile ids, oldest first.
func GetQueueHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ms.Queue.Snapshot())
	}
}

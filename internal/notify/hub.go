// internal/notify/hub.go
package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/sirupsen/logrus"
)

// Subscriber is one live listener for a profile's match notifications, usually a websocket.
type Subscriber struct {
	ProfileID uuid.UUID
	OutChan   chan models.Match
}

// Hub fans match notifications out to every subscriber of the two participants.
type Hub struct {
	mu     sync.Mutex
	subs   map[uuid.UUID]map[*Subscriber]struct{}
	buffer int
	logger logrus.FieldLogger
}

// NewHub returns a hub whose subscribers buffer up to buffer undelivered matches.
func NewHub(logger logrus.FieldLogger, buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[uuid.UUID]map[*Subscriber]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a new listener for profileID. Callers must Unsubscribe when done.
func (h *Hub) Subscribe(profileID uuid.UUID) *Subscriber {
	s := &Subscriber{
		ProfileID: profileID,
		OutChan:   make(chan models.Match, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[profileID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[profileID] = set
	}
	set[s] = struct{}{}
	return s
}

// Unsubscribe removes s and closes its channel. Calling it twice is harmless.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[s.ProfileID]
	if !ok {
		return
	}
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	close(s.OutChan)
	if len(set) == 0 {
		delete(h.subs, s.ProfileID)
	}
}

// NotifyMatch delivers m to both participants. Sends never block; a full subscriber drops it.
func (h *Hub) NotifyMatch(m models.Match) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, pid := range []uuid.UUID{m.Player1, m.Player2} {
		for s := range h.subs[pid] {
			select {
			case s.OutChan <- m:
			default:
				h.logger.WithFields(logrus.Fields{
					"profile_id": pid,
					"match_id":   m.ID,
				}).Warn("match notification dropped, subscriber full")
			}
		}
	}
}

// Subscribers returns how many listeners profileID currently has.
func (h *Hub) Subscribers(profileID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[profileID])
}

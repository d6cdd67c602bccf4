// internal/handlers/api_server.go
package handlers

import (
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/jason-s-yu/pairup/internal/notify"
	"github.com/jason-s-yu/pairup/internal/queue"
	"github.com/jason-s-yu/pairup/internal/store"
	"github.com/sirupsen/logrus"
)

// MatchDispatcher hands new matches to an external event sink without blocking.
type MatchDispatcher interface {
	Dispatch(m models.Match) bool
}

// MatchServer is a high-level struct that holds the profile, queue and match state shared
// by every request handler.
type MatchServer struct {
	Profiles *store.ProfileStore
	Matches  *store.MatchStore
	Queue    *queue.MatchQueue
	Hub      *notify.Hub
	Logger   *logrus.Logger

	// Events is optional. Set it before serving requests.
	Events MatchDispatcher

	// OriginPatterns is passed to websocket.Accept. Empty means same-origin only.
	OriginPatterns []string
}

// NewMatchServer wires fresh in-memory stores together. Extra queue options (e.g. a fixed
// picker in tests) are passed through to the queue.
func NewMatchServer(logger *logrus.Logger, opts ...queue.Option) *MatchServer {
	ms := &MatchServer{
		Profiles: store.NewProfileStore(),
		Matches:  store.NewMatchStore(),
		Hub:      notify.NewHub(logger.WithField("component", "notify"), 8),
		Logger:   logger,
	}

	opts = append([]queue.Option{queue.WithLogger(logger.WithField("component", "queue"))}, opts...)
	ms.Queue = queue.NewMatchQueue(ms.Profiles, ms.Matches, opts...)
	ms.Queue.OnPair = ms.onPair

	return ms
}

// onPair runs after the queue lock is released: push the match to websocket listeners and
// to the event sink, if one is configured.
func (ms *MatchServer) onPair(m models.Match) {
	ms.Hub.NotifyMatch(m)
	if ms.Events != nil {
		ms.Events.Dispatch(m)
	}
}

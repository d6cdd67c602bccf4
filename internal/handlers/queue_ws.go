// internal/handlers/queue_ws.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/middleware"
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/jason-s-yu/pairup/internal/notify"
	"github.com/sirupsen/logrus"
)

const (
	queueSubprotocol = "queue"
	wsWriteTimeout   = 5 * time.Second
	wsPingInterval   = 30 * time.Second
)

// queueStatusMessage is sent once right after the socket opens.
type queueStatusMessage struct {
	Type      string    `json:"type"`
	ProfileID uuid.UUID `json:"profile_id"`
	Queued    bool      `json:"queued"`
}

// matchFoundMessage is pushed whenever the profile is paired.
type matchFoundMessage struct {
	Type  string       `json:"type"`
	Match models.Match `json:"match"`
}

// QueueWSHandler streams match_found events for a single profile. The socket is
// read-only from the client's side; anything the client sends is discarded.
func QueueWSHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := pathID(r, "profile_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{queueSubprotocol},
			OriginPatterns: ms.OriginPatterns,
		})
		if err != nil {
			ms.Logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != queueSubprotocol {
			c.Close(BadSubprotocolError, "client must speak the queue subprotocol")
			return
		}
		if !ms.Profiles.Exists(profileID) {
			c.Close(UnknownProfileError, "profile does not exist")
			return
		}

		logger := ms.Logger.WithField("profile_id", profileID)
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		// subscribe before reporting status so a pairing in between is not missed
		sub := ms.Hub.Subscribe(profileID)
		defer ms.Hub.Unsubscribe(sub)

		ctx := c.CloseRead(r.Context())

		err = writeWS(ctx, c, queueStatusMessage{
			Type:      "queue_status",
			ProfileID: profileID,
			Queued:    ms.Queue.Contains(profileID),
		})
		if err == nil {
			err = pumpMatches(ctx, c, sub, logger)
		}

		status := websocket.CloseStatus(err)
		if errors.Is(err, context.Canceled) || status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
		if err == nil {
			c.Close(websocket.StatusNormalClosure, "")
		}
	}
}

// pumpMatches forwards hub notifications to the socket until the client goes away.
func pumpMatches(ctx context.Context, c *websocket.Conn, sub *notify.Subscriber, logger logrus.FieldLogger) error {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-sub.OutChan:
			if !ok {
				return nil
			}
			if err := writeWS(ctx, c, matchFoundMessage{Type: "match_found", Match: m}); err != nil {
				return err
			}
			logger.WithField("match_id", m.ID).Debug("match_found pushed")
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

func writeWS(ctx context.Context, c *websocket.Conn, v interface{}) error {
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, c, v)
}

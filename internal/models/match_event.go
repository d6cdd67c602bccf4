package models

import "github.com/google/uuid"

// MatchEvent is what gets pushed to the external event sinks whenever a pairing happens.
type MatchEvent struct {
	MatchID   uuid.UUID `json:"match_id"`
	Player1   uuid.UUID `json:"player1"`
	Player2   uuid.UUID `json:"player2"`
	Timestamp int64     `json:"timestamp"` // epoch millis
}

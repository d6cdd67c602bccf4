package models

import "github.com/google/uuid"

// Match pairs two distinct profiles. Which player lands in Player1 vs Player2 carries no meaning.
type Match struct {
	ID      uuid.UUID `json:"id"`
	Player1 uuid.UUID `json:"player1"`
	Player2 uuid.UUID `json:"player2"`
}

// Involves reports whether the profile took part in the match.
func (m Match) Involves(profileID uuid.UUID) bool {
	return m.Player1 == profileID || m.Player2 == profileID
}

// Opponent returns the other participant, or uuid.Nil if profileID is not in the match.
func (m Match) Opponent(profileID uuid.UUID) uuid.UUID {
	switch profileID {
	case m.Player1:
		return m.Player2
	case m.Player2:
		return m.Player1
	}
	return uuid.Nil
}

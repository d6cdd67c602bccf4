package models

import "github.com/google/uuid"

// Profile is a registered player. Profiles are never updated or deleted.
type Profile struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

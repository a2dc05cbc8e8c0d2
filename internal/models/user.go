package models

import "github.com/google/uuid"

// User is the authoritative record for one connected participant. The ID is
// the connection identifier assigned at upgrade time and is never reused.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
}

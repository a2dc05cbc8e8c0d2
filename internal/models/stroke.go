package models

import "github.com/google/uuid"

// StrokeSegment is one animation frame's worth of pen movement. It is relayed
// and discarded, never stored. ID is the drawing user and is stamped by the
// server before rebroadcast; inbound frames leave it empty.
type StrokeSegment struct {
	ID    uuid.UUID `json:"id"`
	Color string    `json:"color"`
	SX    float64   `json:"sx"`
	SY    float64   `json:"sy"`
	MX    float64   `json:"mx"`
	MY    float64   `json:"my"`
}

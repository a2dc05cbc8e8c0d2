package models

import (
	"encoding/json"
)

// SocketEvent is the wire envelope for every frame in both directions.
type SocketEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

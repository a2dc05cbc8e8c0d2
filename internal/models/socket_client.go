package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// SocketClient is one live connection. Send is a buffered channel drained by
// the connection's write pump; it is closed exactly once, by the dispatcher,
// when the connection is removed.
type SocketClient struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Send chan []byte
}

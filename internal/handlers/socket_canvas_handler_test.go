package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"socketCanvas/configs"
	"socketCanvas/internal/enums"
	"socketCanvas/internal/models"
	"socketCanvas/internal/session"
)

func newTestServer(t *testing.T, allowedOrigins []string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &configs.Config{
		Server: configs.ServerConfig{AllowedOrigins: allowedOrigins},
		Canvas: configs.CanvasConfig{
			RetentionWindow:    time.Minute,
			ExpiryPollInterval: time.Second,
			SpawnArea:          320,
			SendBufferSize:     64,
			MaxMessageSize:     1 << 20,
		},
	}

	dispatcher := session.NewDispatcher(
		session.NewRegistry(cfg.Canvas.SpawnArea),
		session.NewChatLog(),
		session.NewHistoryStore(cfg.Canvas.RetentionWindow, cfg.Canvas.ExpiryPollInterval),
	)
	go dispatcher.Run()

	router := gin.New()
	router.GET("/ws", NewSocketCanvasHandler(dispatcher, cfg).HandleSocketCanvasRoute)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = dispatcher.Shutdown(time.Second)
	})
	return server
}

func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWireEvent(t *testing.T, conn *websocket.Conn) models.SocketEvent {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	var ev models.SocketEvent
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read frame: %v", err)
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("Failed to unmarshal frame %q: %v", raw, err)
	}
	return ev
}

func expectWireEvent(t *testing.T, conn *websocket.Conn, want string) models.SocketEvent {
	t.Helper()
	ev := readWireEvent(t, conn)
	if ev.Event != want {
		t.Fatalf("Expected event %q, got %q", want, ev.Event)
	}
	return ev
}

func writeWireEvent(t *testing.T, conn *websocket.Conn, eventName string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	frame, err := json.Marshal(models.SocketEvent{Event: eventName, Payload: raw})
	if err != nil {
		t.Fatalf("Failed to marshal frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("Failed to write frame: %v", err)
	}
}

func TestConnectPushesPalette(t *testing.T) {
	server := newTestServer(t, nil)
	conn := dialWebSocket(t, server)

	ev := expectWireEvent(t, conn, enums.SOCKET_EVENT_PALETTE)
	var palette []string
	if err := json.Unmarshal(ev.Payload, &palette); err != nil {
		t.Fatalf("Failed to decode palette: %v", err)
	}
	if len(palette) != 10 {
		t.Errorf("Palette has %d colors, want 10", len(palette))
	}
}

func TestJoinHandshakeSequence(t *testing.T) {
	server := newTestServer(t, nil)
	conn := dialWebSocket(t, server)
	expectWireEvent(t, conn, enums.SOCKET_EVENT_PALETTE)

	writeWireEvent(t, conn, enums.SOCKET_EVENT_JOIN_SESSION, nil)

	for _, want := range []string{
		enums.SOCKET_EVENT_ROSTER_SNAPSHOT,
		enums.SOCKET_EVENT_SELF_RECORD,
		enums.SOCKET_EVENT_HISTORY_SNAPSHOT,
		enums.SOCKET_EVENT_CHAT_LOG_SNAPSHOT,
	} {
		expectWireEvent(t, conn, want)
	}
}

func TestPositionBroadcastOverSocket(t *testing.T) {
	server := newTestServer(t, nil)

	mover := dialWebSocket(t, server)
	expectWireEvent(t, mover, enums.SOCKET_EVENT_PALETTE)
	writeWireEvent(t, mover, enums.SOCKET_EVENT_JOIN_SESSION, nil)
	var self models.User
	expectWireEvent(t, mover, enums.SOCKET_EVENT_ROSTER_SNAPSHOT)
	ev := expectWireEvent(t, mover, enums.SOCKET_EVENT_SELF_RECORD)
	if err := json.Unmarshal(ev.Payload, &self); err != nil {
		t.Fatalf("Failed to decode self record: %v", err)
	}
	expectWireEvent(t, mover, enums.SOCKET_EVENT_HISTORY_SNAPSHOT)
	expectWireEvent(t, mover, enums.SOCKET_EVENT_CHAT_LOG_SNAPSHOT)

	watcher := dialWebSocket(t, server)
	expectWireEvent(t, watcher, enums.SOCKET_EVENT_PALETTE)
	writeWireEvent(t, watcher, enums.SOCKET_EVENT_JOIN_SESSION, nil)
	expectWireEvent(t, watcher, enums.SOCKET_EVENT_ROSTER_SNAPSHOT)
	expectWireEvent(t, watcher, enums.SOCKET_EVENT_SELF_RECORD)
	expectWireEvent(t, watcher, enums.SOCKET_EVENT_HISTORY_SNAPSHOT)
	expectWireEvent(t, watcher, enums.SOCKET_EVENT_CHAT_LOG_SNAPSHOT)
	expectWireEvent(t, mover, enums.SOCKET_EVENT_USER_JOINED)

	writeWireEvent(t, mover, enums.SOCKET_EVENT_UPDATE_POSITION, models.PositionPayload{X: 42, Y: -7})

	ev = expectWireEvent(t, watcher, enums.SOCKET_EVENT_POSITION_CHANGED)
	var moved models.User
	if err := json.Unmarshal(ev.Payload, &moved); err != nil {
		t.Fatalf("Failed to decode position-changed: %v", err)
	}
	if moved.ID != self.ID || moved.X != 42 || moved.Y != -7 {
		t.Errorf("position-changed = %+v, want (42, -7) for %v", moved, self.ID)
	}
}

func TestMalformedFrameKeepsConnectionOpen(t *testing.T) {
	server := newTestServer(t, nil)
	conn := dialWebSocket(t, server)
	expectWireEvent(t, conn, enums.SOCKET_EVENT_PALETTE)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json at all")); err != nil {
		t.Fatalf("Failed to write raw frame: %v", err)
	}

	// The connection must still answer a well-formed frame.
	writeWireEvent(t, conn, enums.SOCKET_EVENT_JOIN_SESSION, nil)
	expectWireEvent(t, conn, enums.SOCKET_EVENT_ROSTER_SNAPSHOT)
}

func TestDisallowedOriginRejected(t *testing.T) {
	server := newTestServer(t, []string{"https://canvas.example.com"})
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatal("Dial from a disallowed origin succeeded")
	}
	if resp != nil && resp.StatusCode != http.StatusForbidden {
		t.Errorf("Handshake status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}

	header.Set("Origin", "https://canvas.example.com")
	conn, _, err = websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Dial from an allowed origin failed: %v", err)
	}
	conn.Close()
}

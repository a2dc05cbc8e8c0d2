package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"socketCanvas/configs"
	"socketCanvas/internal/errs"
	"socketCanvas/internal/models"
	"socketCanvas/internal/msgs"
	"socketCanvas/internal/session"
)

type SocketCanvasHandler struct {
	upgrader   websocket.Upgrader
	dispatcher *session.Dispatcher
	cfg        *configs.Config
}

func NewSocketCanvasHandler(dispatcher *session.Dispatcher, cfg *configs.Config) *SocketCanvasHandler {
	return &SocketCanvasHandler{
		dispatcher: dispatcher,
		cfg:        cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(cfg.Server.AllowedOrigins) == 0 {
					return true
				}
				return slices.Contains(cfg.Server.AllowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

// HandleSocketCanvasRoute upgrades the connection, registers it with the
// dispatcher and pumps frames in both directions until the socket closes.
func (sch *SocketCanvasHandler) HandleSocketCanvasRoute(ctx *gin.Context) {
	ws, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Upgrade failed: %v", err)
		// The upgrader replies itself on handshake errors (e.g. a rejected
		// origin); only answer here if nothing was written yet.
		if !ctx.Writer.Written() {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  []string{err.Error()},
			})
		}
		return
	}
	ws.SetReadLimit(sch.cfg.Canvas.MaxMessageSize)

	client := &models.SocketClient{
		ID:   uuid.New(),
		Conn: ws,
		Send: make(chan []byte, sch.cfg.Canvas.SendBufferSize),
	}

	sch.dispatcher.Connect(client)
	go sch.writePump(client)
	sch.readLoop(client)
}

// readLoop turns inbound frames into dispatcher events. A frame that fails to
// parse is dropped and the connection stays open; only transport errors end
// the connection.
func (sch *SocketCanvasHandler) readLoop(client *models.SocketClient) {
	defer sch.dispatcher.Disconnect(client)
	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close from %v: %v", client.ID, err)
			}
			return
		}

		var message models.SocketEvent
		if err := json.Unmarshal(raw, &message); err != nil {
			log.Printf("Dropping frame from %v: %v (%v)", client.ID, errs.ErrInvalidPayload, err)
			continue
		}
		sch.dispatcher.Dispatch(client, message)
	}
}

// writePump drains the client's send channel. The dispatcher closing the
// channel is the signal that the connection was removed.
func (sch *SocketCanvasHandler) writePump(client *models.SocketClient) {
	defer func() {
		if err := client.Conn.Close(); err != nil {
			log.Printf("Error closing connection for %v: %v", client.ID, err)
		}
	}()

	for frame := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Printf("Error writing to %v: %v", client.ID, err)
			return
		}
	}
	_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

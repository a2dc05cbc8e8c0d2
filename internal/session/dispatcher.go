package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"socketCanvas/internal/enums"
	"socketCanvas/internal/errs"
	"socketCanvas/internal/models"
	"socketCanvas/internal/validators"
)

type eventKind int

const (
	eventConnect eventKind = iota
	eventDisconnect
	eventInbound
	eventExpiryCheck
)

type event struct {
	kind    eventKind
	client  *models.SocketClient
	message models.SocketEvent
}

// Dispatcher is the composition root of the session: it owns the registry,
// chat log and history store and is the only goroutine that mutates them.
// Every inbound frame, connection change and timer fire enters the same event
// channel and is processed to completion one at a time, so the components need
// no locking of their own.
type Dispatcher struct {
	registry *Registry
	chat     *ChatLog
	history  *HistoryStore
	clients  map[uuid.UUID]*models.SocketClient
	events   chan event
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewDispatcher(registry *Registry, chat *ChatLog, history *HistoryStore) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		registry: registry,
		chat:     chat,
		history:  history,
		clients:  make(map[uuid.UUID]*models.SocketClient),
		events:   make(chan event),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	history.bind(d.requestExpiryCheck)
	return d
}

// Run processes events until Shutdown. Call it in its own goroutine.
func (d *Dispatcher) Run() {
	defer close(d.done)
	for {
		select {
		case <-d.ctx.Done():
			d.shutdownClients()
			return
		case ev := <-d.events:
			d.handleEvent(ev)
		}
	}
}

// Shutdown stops the event loop and closes every client send channel. It
// returns errs.ErrDispatcherClosed if the loop does not drain in time.
func (d *Dispatcher) Shutdown(timeout time.Duration) error {
	d.cancel()
	select {
	case <-d.done:
		return nil
	case <-time.After(timeout):
		return errs.ErrDispatcherClosed
	}
}

// Connect hands a freshly upgraded connection to the event loop.
func (d *Dispatcher) Connect(client *models.SocketClient) {
	d.enqueue(event{kind: eventConnect, client: client})
}

// Disconnect removes a connection. Safe to call more than once.
func (d *Dispatcher) Disconnect(client *models.SocketClient) {
	d.enqueue(event{kind: eventDisconnect, client: client})
}

// Dispatch routes one inbound frame from a connection's read loop.
func (d *Dispatcher) Dispatch(client *models.SocketClient, message models.SocketEvent) {
	d.enqueue(event{kind: eventInbound, client: client, message: message})
}

func (d *Dispatcher) enqueue(ev event) {
	select {
	case d.events <- ev:
	case <-d.ctx.Done():
	}
}

// requestExpiryCheck is the history timer callback. It re-enters the event
// loop instead of touching state, so a timer fire never races a client event.
func (d *Dispatcher) requestExpiryCheck() {
	d.enqueue(event{kind: eventExpiryCheck})
}

func (d *Dispatcher) handleEvent(ev event) {
	switch ev.kind {
	case eventConnect:
		d.handleConnect(ev.client)
	case eventDisconnect:
		d.handleDisconnect(ev.client)
	case eventInbound:
		d.handleInbound(ev.client, ev.message)
	case eventExpiryCheck:
		d.history.TimerFired()
		d.flushExpiry(time.Now())
	}
}

func (d *Dispatcher) handleConnect(client *models.SocketClient) {
	d.clients[client.ID] = client
	d.registry.OnConnect(client.ID)
	d.sendToOne(client, enums.SOCKET_EVENT_PALETTE, Palette)
	log.Printf("Client %v connected. Total clients: %d", client.ID, len(d.clients))
}

func (d *Dispatcher) handleDisconnect(client *models.SocketClient) {
	current, ok := d.clients[client.ID]
	if !ok {
		return
	}
	// The registry entry must be gone before the leave broadcast goes out, so
	// a roster snapshot sent to anyone else can never contain the departed id.
	wasActive := d.registry.OnDisconnect(client.ID)
	delete(d.clients, client.ID)
	close(current.Send)
	if wasActive {
		d.broadcastToAll(enums.SOCKET_EVENT_USER_LEFT, models.UserLeftPayload{ID: client.ID})
	}
	log.Printf("Client %v disconnected. Total clients: %d", client.ID, len(d.clients))
}

func (d *Dispatcher) handleInbound(client *models.SocketClient, message models.SocketEvent) {
	if _, ok := d.clients[client.ID]; !ok {
		// Frame from a connection that was already torn down.
		return
	}

	switch message.Event {
	case enums.SOCKET_EVENT_JOIN_SESSION:
		d.handleJoin(client)
	case enums.SOCKET_EVENT_LEAVE_SESSION:
		d.handleLeave(client)
	case enums.SOCKET_EVENT_UPDATE_POSITION:
		d.handleUpdatePosition(client, message.Payload)
	case enums.SOCKET_EVENT_UPDATE_COLOR:
		d.handleUpdateColor(client, message.Payload)
	case enums.SOCKET_EVENT_UPDATE_NAME:
		d.handleUpdateName(client, message.Payload)
	case enums.SOCKET_EVENT_SUBMIT_CHAT:
		d.handleSubmitChat(client, message.Payload)
	case enums.SOCKET_EVENT_BEGIN_STROKE_SEGMENT:
		d.handleStrokeSegment(client, message.Payload)
	case enums.SOCKET_EVENT_COMPLETE_STROKE:
		d.handleCompleteStroke(client, message.Payload)
	default:
		log.Printf("Dropping %q from %v: %v", message.Event, client.ID, errs.ErrUnknownEvent)
	}
}

// handleJoin activates a pending user. The roster snapshot is sent before
// activation so the joiner sees only the participants that preceded it; its
// own record arrives separately as self-record. A join from an already active
// user is treated as a resync and answered with fresh snapshots only.
func (d *Dispatcher) handleJoin(client *models.SocketClient) {
	if _, active := d.registry.Get(client.ID); !active {
		d.sendToOne(client, enums.SOCKET_EVENT_ROSTER_SNAPSHOT, d.registry.All())
		user, ok := d.registry.Join(client.ID)
		if !ok {
			return
		}
		d.broadcastToOthers(enums.SOCKET_EVENT_USER_JOINED, user, client.ID)
	} else {
		d.sendToOne(client, enums.SOCKET_EVENT_ROSTER_SNAPSHOT, d.registry.All())
	}

	user, ok := d.registry.Get(client.ID)
	if !ok {
		return
	}
	d.sendToOne(client, enums.SOCKET_EVENT_SELF_RECORD, user)
	d.sendToOne(client, enums.SOCKET_EVENT_HISTORY_SNAPSHOT, d.history.Snapshots())
	d.sendToOne(client, enums.SOCKET_EVENT_CHAT_LOG_SNAPSHOT, d.chat.Entries())
}

func (d *Dispatcher) handleLeave(client *models.SocketClient) {
	if !d.registry.Leave(client.ID) {
		return
	}
	d.broadcastToAll(enums.SOCKET_EVENT_USER_LEFT, models.UserLeftPayload{ID: client.ID})
}

func (d *Dispatcher) handleUpdatePosition(client *models.SocketClient, payload json.RawMessage) {
	var position models.PositionPayload
	if err := json.Unmarshal(payload, &position); err != nil {
		log.Printf("Dropping malformed update-position from %v: %v", client.ID, err)
		return
	}
	user, ok := d.registry.Get(client.ID)
	if !ok {
		// Expected race with disconnect or leave; not an error.
		return
	}
	user.X = position.X
	user.Y = position.Y
	// The sender's position is locally authoritative, so it gets no echo.
	d.broadcastToOthers(enums.SOCKET_EVENT_POSITION_CHANGED, user, client.ID)
}

func (d *Dispatcher) handleUpdateColor(client *models.SocketClient, payload json.RawMessage) {
	var color models.ColorPayload
	if err := json.Unmarshal(payload, &color); err != nil {
		log.Printf("Dropping malformed update-color from %v: %v", client.ID, err)
		return
	}
	if err := validators.ValidateColor(color.Color, Palette); err != nil {
		log.Printf("Dropping update-color from %v: %v", client.ID, err)
		return
	}
	user, ok := d.registry.Get(client.ID)
	if !ok {
		return
	}
	user.Color = color.Color
	// Echoed to the sender as well so its own cursor label reflects the change.
	d.broadcastToAll(enums.SOCKET_EVENT_COLOR_CHANGED, user)
}

func (d *Dispatcher) handleUpdateName(client *models.SocketClient, payload json.RawMessage) {
	var name models.NamePayload
	if err := json.Unmarshal(payload, &name); err != nil {
		log.Printf("Dropping malformed update-name from %v: %v", client.ID, err)
		return
	}
	if err := validators.ValidateName(name.Name); err != nil {
		log.Printf("Dropping update-name from %v: %v", client.ID, err)
		return
	}
	user, ok := d.registry.Get(client.ID)
	if !ok {
		return
	}
	user.Name = name.Name
	d.broadcastToAll(enums.SOCKET_EVENT_NAME_CHANGED, user)
}

func (d *Dispatcher) handleSubmitChat(client *models.SocketClient, payload json.RawMessage) {
	var chat models.ChatPayload
	if err := json.Unmarshal(payload, &chat); err != nil {
		log.Printf("Dropping malformed submit-chat from %v: %v", client.ID, err)
		return
	}
	if err := validators.ValidateChatText(chat.Text); err != nil {
		log.Printf("Dropping submit-chat from %v: %v", client.ID, err)
		return
	}
	user, ok := d.registry.Get(client.ID)
	if !ok {
		return
	}
	entry := d.chat.Append(user, chat.Text)
	d.broadcastToAll(enums.SOCKET_EVENT_CHAT_POSTED, entry)
}

func (d *Dispatcher) handleStrokeSegment(client *models.SocketClient, payload json.RawMessage) {
	var segment models.StrokeSegment
	if err := json.Unmarshal(payload, &segment); err != nil {
		log.Printf("Dropping malformed stroke segment from %v: %v", client.ID, err)
		return
	}
	if _, ok := d.registry.Get(client.ID); !ok {
		return
	}
	segment.ID = client.ID
	d.broadcastToOthers(enums.SOCKET_EVENT_STROKE_SEGMENT, segment, client.ID)
}

func (d *Dispatcher) handleCompleteStroke(client *models.SocketClient, payload json.RawMessage) {
	var stroke models.CompleteStrokePayload
	if err := json.Unmarshal(payload, &stroke); err != nil {
		log.Printf("Dropping malformed complete-stroke from %v: %v", client.ID, err)
		return
	}
	if stroke.Image == "" {
		log.Printf("Dropping complete-stroke from %v: %v", client.ID, errs.ErrInvalidImage)
		return
	}
	if _, ok := d.registry.Get(client.ID); !ok {
		return
	}
	now := time.Now()
	d.history.Append(stroke.Image, now)
	d.flushExpiry(now)
}

func (d *Dispatcher) flushExpiry(now time.Time) {
	for _, remaining := range d.history.CheckExpiry(now) {
		d.broadcastToAll(enums.SOCKET_EVENT_HISTORY_TRUNCATED, remaining)
	}
}

func (d *Dispatcher) frame(eventName string, payload any) ([]byte, bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling %s payload: %v", eventName, err)
		return nil, false
	}
	frame, err := json.Marshal(models.SocketEvent{Event: eventName, Payload: raw})
	if err != nil {
		log.Printf("Error marshalling %s frame: %v", eventName, err)
		return nil, false
	}
	return frame, true
}

func (d *Dispatcher) sendToOne(client *models.SocketClient, eventName string, payload any) {
	if frame, ok := d.frame(eventName, payload); ok {
		d.push(client, frame)
	}
}

func (d *Dispatcher) broadcastToAll(eventName string, payload any) {
	frame, ok := d.frame(eventName, payload)
	if !ok {
		return
	}
	for _, client := range d.clients {
		d.push(client, frame)
	}
}

func (d *Dispatcher) broadcastToOthers(eventName string, payload any, sender uuid.UUID) {
	frame, ok := d.frame(eventName, payload)
	if !ok {
		return
	}
	for id, client := range d.clients {
		if id == sender {
			continue
		}
		d.push(client, frame)
	}
}

// push delivers one frame without blocking the event loop. A full buffer
// drops the frame for that client only; the client self-corrects on its next
// resync or on the next full-state broadcast.
func (d *Dispatcher) push(client *models.SocketClient, frame []byte) {
	select {
	case client.Send <- frame:
	default:
		log.Printf("Send buffer full for %v, dropping frame", client.ID)
	}
}

func (d *Dispatcher) shutdownClients() {
	log.Printf("Shutting down %d client connections...", len(d.clients))
	d.history.Close()
	for id, client := range d.clients {
		d.registry.OnDisconnect(id)
		delete(d.clients, id)
		close(client.Send)
	}
}

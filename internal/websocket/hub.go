package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/observer/parley/internal/pubsub"
)

// Dispatcher is the event core the hub feeds. The chat engine
// implements it.
type Dispatcher interface {
	Connect(connID string)
	Disconnect(connID string)
	Dispatch(connID, event string, payload json.RawMessage)
}

// Hub maintains the set of active clients and delivers outbound events
// to them. It carries no chat semantics of its own: the engine decides
// who joins which room and what gets sent, the hub moves the bytes.
//
// Each room the hub tracks also gets a pub/sub subscription so events
// published by HTTP handlers (or another instance when Redis backs the
// pub/sub) reach the room's local clients.
type Hub struct {
	// Registered clients by connection ID
	clients map[string]*Client

	// Room membership: room name -> connection ID -> client
	rooms map[string]map[string]*Client

	// Mutex for thread-safe access
	mu sync.RWMutex

	// Active room subscriptions, guarded separately so subscribe
	// calls never run under the client lock
	roomSubs map[string]pubsub.Subscription
	subMu    sync.Mutex

	dispatcher Dispatcher
	ps         pubsub.PubSub
	logger     *slog.Logger
}

// NewHub creates a new Hub
func NewHub(dispatcher Dispatcher, ps pubsub.PubSub, logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		roomSubs:   make(map[string]pubsub.Subscription),
		dispatcher: dispatcher,
		ps:         ps,
		logger:     logger,
	}
}

// Register adds a client to the hub and announces the connection to the
// dispatcher. It completes before the client's pumps start, so the
// connection greeting is queued ahead of any inbound traffic.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	h.dispatcher.Connect(client.ID)
	h.logger.Debug("client connected", "connection_id", client.ID)
}

// Unregister removes a client from the hub and tells the dispatcher the
// connection is gone
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		// Already unregistered
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)

	// Remove from all rooms
	var emptied []string
	for _, room := range client.GetRooms() {
		if members, ok := h.rooms[room]; ok {
			delete(members, client.ID)
			if len(members) == 0 {
				delete(h.rooms, room)
				emptied = append(emptied, room)
			}
		}
	}

	close(client.send)
	h.mu.Unlock()

	for _, room := range emptied {
		h.dropRoomSub(room)
	}

	h.dispatcher.Disconnect(client.ID)
	h.logger.Debug("client disconnected", "connection_id", client.ID)
}

// HandleMessage forwards an incoming WebSocket message to the dispatcher
func (h *Hub) HandleMessage(client *Client, msg *Message) {
	h.dispatcher.Dispatch(client.ID, msg.Type, msg.Payload)
}

// Emit sends an event to a single connection
func (h *Hub) Emit(connID, event string, payload json.RawMessage) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	_ = client.Send(NewRawMessage(event, payload))
}

// Broadcast sends an event to every connection in a room, optionally
// skipping one
func (h *Hub) Broadcast(room, event string, payload json.RawMessage, skipConnID string) {
	h.mu.RLock()
	members, ok := h.rooms[room]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Copy clients to avoid holding lock during send
	clients := make([]*Client, 0, len(members))
	for id, client := range members {
		if id == skipConnID {
			continue
		}
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	msg := NewRawMessage(event, payload)
	for _, client := range clients {
		_ = client.Send(msg)
	}
}

// Join places a connection in a room
func (h *Hub) Join(connID, room string) {
	h.mu.Lock()
	client, ok := h.clients[connID]
	if !ok {
		h.mu.Unlock()
		return
	}
	client.JoinRoom(room)
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*Client)
	}
	h.rooms[room][connID] = client
	h.mu.Unlock()

	h.ensureRoomSub(room)
}

// Leave removes a connection from a room
func (h *Hub) Leave(connID, room string) {
	h.mu.Lock()
	if client, ok := h.clients[connID]; ok {
		client.LeaveRoom(room)
	}
	emptied := false
	if members, ok := h.rooms[room]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, room)
			emptied = true
		}
	}
	h.mu.Unlock()

	if emptied {
		h.dropRoomSub(room)
	}
}

// ClientCount returns the number of registered connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ensureRoomSub subscribes to a room's pub/sub topic so remotely
// published events reach local clients. Idempotent per room.
func (h *Hub) ensureRoomSub(room string) {
	if h.ps == nil {
		return
	}

	h.subMu.Lock()
	defer h.subMu.Unlock()
	if _, ok := h.roomSubs[room]; ok {
		return
	}

	sub, err := h.ps.Subscribe(context.Background(), pubsub.Topics.Room(room), func(ctx context.Context, msg *pubsub.Message) {
		h.Broadcast(room, msg.Type, msg.Payload, "")
	})
	if err != nil {
		h.logger.Error("failed to subscribe to room topic", "room", room, "error", err)
		return
	}
	h.roomSubs[room] = sub
}

// dropRoomSub unsubscribes from a room's topic once no local client
// remains in the room
func (h *Hub) dropRoomSub(room string) {
	if h.ps == nil {
		return
	}

	h.subMu.Lock()
	sub, ok := h.roomSubs[room]
	if ok {
		delete(h.roomSubs, room)
	}
	h.subMu.Unlock()

	if ok {
		if err := sub.Unsubscribe(); err != nil {
			h.logger.Warn("failed to unsubscribe from room topic", "room", room, "error", err)
		}
	}
}

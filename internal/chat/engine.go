// Package chat holds the event engine behind the websocket surface: room
// chat, private messages, reactions, stranger matchmaking and video call
// signaling. All state lives in memory behind a single mutex; handlers
// queue outbound traffic as effects and the transport is only touched
// after the lock is released.
package chat

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/observer/parley/internal/domain"
	"github.com/observer/parley/internal/metrics"
)

// Transport delivers events to connected clients and maintains room
// membership. The websocket hub implements it.
type Transport interface {
	Emit(connID, event string, payload json.RawMessage)
	Broadcast(room, event string, payload json.RawMessage, skipConnID string)
	Join(connID, room string)
	Leave(connID, room string)
}

// reactionEntry is one emoji's reaction group on a message, in the order
// users reacted.
type reactionEntry struct {
	emoji string
	users []string
}

// Engine is the single-process chat core. One instance serves every
// connection.
type Engine struct {
	mu     sync.Mutex
	logger *slog.Logger

	transport Transport

	sessions map[string]*domain.Session
	rooms    map[string][]string

	messages     map[string]*domain.Message
	roomMessages map[string][]string
	reactions    map[string][]*reactionEntry

	conversations map[string][]*domain.PrivateMessage

	profiles       map[string]*domain.StrangerProfile
	waiting        []string
	interestQueues map[string][]string
	pairs          map[string]string
	calls          map[string]*domain.Call

	lastMs int64
}

// NewEngine builds an empty engine. SetTransport must be called before
// any traffic is dispatched.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:         logger.With("component", "chat"),
		sessions:       make(map[string]*domain.Session),
		rooms:          make(map[string][]string),
		messages:       make(map[string]*domain.Message),
		roomMessages:   make(map[string][]string),
		reactions:      make(map[string][]*reactionEntry),
		conversations:  make(map[string][]*domain.PrivateMessage),
		profiles:       make(map[string]*domain.StrangerProfile),
		interestQueues: make(map[string][]string),
		pairs:          make(map[string]string),
		calls:          make(map[string]*domain.Call),
	}
}

// SetTransport wires the delivery layer. Call once during startup,
// before the transport accepts connections.
func (e *Engine) SetTransport(t Transport) {
	e.transport = t
}

// Connect registers a new connection and greets it with the available
// chat modes.
func (e *Engine) Connect(connID string) {
	fx := e.newEffects()

	e.mu.Lock()
	e.sessions[connID] = &domain.Session{
		ID:          connID,
		Mode:        domain.ModeRegular,
		ConnectedAt: time.Now(),
	}
	e.mu.Unlock()

	fx.emit(connID, EventConnectionOptions, ConnectionOptionsPayload{
		Modes:   []string{"chat_rooms", "stranger_chat"},
		Message: "Choose your chat mode",
	})
	e.flush(fx)

	metrics.ConnectionsActive.Inc()
	e.logger.Info("client connected", "conn_id", connID)
}

// Disconnect tears down every trace of a connection: room membership,
// stranger pairing, queue entries and any call naming it. Peers are
// notified the same way they would be by the matching explicit events.
func (e *Engine) Disconnect(connID string) {
	fx := e.newEffects()

	e.mu.Lock()
	sess, ok := e.sessions[connID]
	if !ok {
		e.mu.Unlock()
		return
	}

	if sess.Joined && sess.Room != "" {
		e.removeFromRoom(fx, connID, sess)
	}

	e.unpair(fx, connID)
	e.dequeue(connID)
	e.endCallsFor(fx, connID)
	delete(e.profiles, connID)
	delete(e.sessions, connID)
	e.updateStrangerGauges()
	e.mu.Unlock()

	e.flush(fx)

	metrics.ConnectionsActive.Dec()
	e.logger.Info("client disconnected", "conn_id", connID)
}

// Dispatch routes one client event. State transitions happen under the
// engine lock; transport delivery happens after it is released, in the
// order the handler queued it.
func (e *Engine) Dispatch(connID, event string, payload json.RawMessage) {
	metrics.EventsTotal.WithLabelValues(event).Inc()

	fx := e.newEffects()

	e.mu.Lock()
	e.route(fx, connID, event, payload)
	e.mu.Unlock()

	e.flush(fx)
}

// decode unmarshals an inbound payload. Absent or malformed bodies leave
// the zero value in place so the per-field checks in each handler apply.
func (e *Engine) decode(raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		e.logger.Debug("payload decode failed", "error", err)
	}
}

// nowMs returns the current wall clock in milliseconds, bumped past the
// previously issued value so identifiers never collide. Callers hold the
// engine lock.
func (e *Engine) nowMs() int64 {
	ms := time.Now().UnixMilli()
	if ms <= e.lastMs {
		ms = e.lastMs + 1
	}
	e.lastMs = ms
	return ms
}

// messageID builds "<prefix>_<connID>_<ms>", or "<connID>_<ms>" when
// prefix is empty.
func (e *Engine) messageID(prefix, connID string) string {
	ms := strconv.FormatInt(e.nowMs(), 10)
	if prefix != "" {
		return prefix + "_" + connID + "_" + ms
	}
	return connID + "_" + ms
}

// systemID builds the identifier for server-generated messages.
func (e *Engine) systemID() string {
	return "system_" + strconv.FormatInt(e.nowMs(), 10)
}

// storeMessage records a room-delivered message in the store and the
// room's ordered index.
func (e *Engine) storeMessage(msg *domain.Message) {
	e.messages[msg.ID] = msg
	e.roomMessages[msg.Room] = append(e.roomMessages[msg.Room], msg.ID)
	metrics.MessagesTotal.WithLabelValues(string(msg.Type)).Inc()
}

// updateStrangerGauges refreshes the searching and pair gauges from
// profile state. Callers hold the engine lock.
func (e *Engine) updateStrangerGauges() {
	var searching int
	for _, p := range e.profiles {
		if p.Status == domain.StrangerStatusSearching {
			searching++
		}
	}
	metrics.StrangerSearching.Set(float64(searching))
	metrics.StrangerPairsActive.Set(float64(len(e.pairs) / 2))
}

// effectKind selects which transport call an effect maps to.
type effectKind int

const (
	effectEmit effectKind = iota
	effectBroadcast
	effectJoin
	effectLeave
)

type effect struct {
	kind    effectKind
	conn    string
	room    string
	event   string
	payload json.RawMessage
	skip    string
}

// effects queues outbound work while the engine lock is held. Payloads
// are marshaled at queue time so later state changes cannot leak into
// them.
type effects struct {
	logger *slog.Logger
	list   []effect
}

func (e *Engine) newEffects() *effects {
	return &effects{logger: e.logger}
}

func (fx *effects) marshal(payload any) (json.RawMessage, bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		fx.logger.Error("marshal outbound payload", "error", err)
		return nil, false
	}
	return raw, true
}

func (fx *effects) emit(connID, event string, payload any) {
	raw, ok := fx.marshal(payload)
	if !ok {
		return
	}
	fx.list = append(fx.list, effect{kind: effectEmit, conn: connID, event: event, payload: raw})
}

func (fx *effects) broadcast(room, event string, payload any) {
	fx.broadcastExcept(room, event, payload, "")
}

func (fx *effects) broadcastExcept(room, event string, payload any, skipConnID string) {
	raw, ok := fx.marshal(payload)
	if !ok {
		return
	}
	fx.list = append(fx.list, effect{kind: effectBroadcast, room: room, event: event, payload: raw, skip: skipConnID})
}

func (fx *effects) join(connID, room string) {
	fx.list = append(fx.list, effect{kind: effectJoin, conn: connID, room: room})
}

func (fx *effects) leave(connID, room string) {
	fx.list = append(fx.list, effect{kind: effectLeave, conn: connID, room: room})
}

// flush replays queued effects against the transport. Never called with
// the engine lock held.
func (e *Engine) flush(fx *effects) {
	if e.transport == nil {
		return
	}
	for _, ef := range fx.list {
		switch ef.kind {
		case effectEmit:
			e.transport.Emit(ef.conn, ef.event, ef.payload)
		case effectBroadcast:
			e.transport.Broadcast(ef.room, ef.event, ef.payload, ef.skip)
		case effectJoin:
			e.transport.Join(ef.conn, ef.room)
		case effectLeave:
			e.transport.Leave(ef.conn, ef.room)
		}
	}
}

// dequeue removes every entry for a connection from the general queue
// and all interest queues. Callers hold the engine lock.
func (e *Engine) dequeue(connID string) {
	e.waiting = slices.DeleteFunc(e.waiting, func(id string) bool { return id == connID })
	for interest, queue := range e.interestQueues {
		e.interestQueues[interest] = slices.DeleteFunc(queue, func(id string) bool { return id == connID })
	}
}

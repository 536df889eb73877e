package chat

import (
	"slices"
	"time"

	"github.com/observer/parley/internal/domain"
)

// handleJoinRoom binds a connection to a room. The first join wins;
// later join_room events on the same connection are ignored.
func (e *Engine) handleJoinRoom(fx *effects, connID string, p joinRoomPayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		return
	}
	if sess.Joined {
		e.logger.Debug("duplicate join ignored", "conn_id", connID, "room", sess.Room)
		return
	}

	room := p.room()
	if room == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "Room not specified"})
		return
	}
	username := p.username()

	sess.Joined = true
	sess.Username = username
	sess.Room = room
	sess.Mode = domain.ModeRegular

	fx.join(connID, room)
	if !slices.Contains(e.rooms[room], connID) {
		e.rooms[room] = append(e.rooms[room], connID)
	}

	fx.emit(connID, EventJoinSuccess, JoinSuccessPayload{
		Room:     room,
		Username: username,
		Message:  "Successfully joined " + room,
		Status:   "joined",
	})

	// The welcome goes to the joiner alone and is not kept in history.
	fx.emit(connID, EventMessage, &domain.Message{
		ID:        e.systemID(),
		Type:      domain.MessageTypeSystem,
		Content:   "Welcome to " + room + "!",
		Username:  "System",
		Room:      room,
		Timestamp: time.Now(),
	})

	joined := &domain.Message{
		ID:        e.systemID(),
		Type:      domain.MessageTypeSystem,
		Content:   username + " joined the chat",
		Username:  "System",
		Room:      room,
		Timestamp: time.Now(),
	}
	e.storeMessage(joined)
	fx.broadcastExcept(room, EventMessage, joined, connID)

	e.broadcastRoomUsers(fx, room)

	e.logger.Info("user joined room", "conn_id", connID, "room", room, "username", username)
}

// removeFromRoom drops a leaving connection from its room, tells the
// remaining members and refreshes the roster. Callers hold the engine
// lock.
func (e *Engine) removeFromRoom(fx *effects, connID string, sess *domain.Session) {
	room := sess.Room
	members, ok := e.rooms[room]
	if !ok {
		return
	}
	idx := slices.Index(members, connID)
	if idx < 0 {
		return
	}
	e.rooms[room] = slices.Delete(members, idx, idx+1)

	fx.leave(connID, room)

	left := &domain.Message{
		ID:        e.systemID(),
		Type:      domain.MessageTypeSystem,
		Content:   sess.DisplayName() + " left the chat",
		Username:  "System",
		Room:      room,
		Timestamp: time.Now(),
	}
	e.storeMessage(left)
	fx.broadcast(room, EventMessage, left)

	e.broadcastRoomUsers(fx, room)
}

// broadcastRoomUsers sends the current roster to everyone in the room.
// Members without a live session are skipped rather than surfaced.
func (e *Engine) broadcastRoomUsers(fx *effects, room string) {
	members := e.rooms[room]
	users := make([]domain.RoomUser, 0, len(members))
	for _, id := range members {
		sess, ok := e.sessions[id]
		if !ok {
			continue
		}
		users = append(users, domain.RoomUser{
			Username: sess.DisplayName(),
			ID:       id,
			IsOnline: true,
		})
	}

	fx.broadcast(room, EventRoomUsers, RoomUsersPayload{
		Room:  room,
		Users: users,
		Count: len(users),
	})
}

// handleTyping relays typing state either to one private chat partner or
// to the rest of the sender's room.
func (e *Engine) handleTyping(fx *effects, connID string, p typingPayload, typing bool) {
	sess, ok := e.sessions[connID]
	if !ok {
		return
	}
	username := sess.DisplayName()

	if p.IsPrivate && p.TargetUserID != "" {
		fx.emit(p.TargetUserID, EventUserTyping, TypingPayload{
			Username:  username,
			UserID:    connID,
			Typing:    typing,
			IsPrivate: true,
		})
		return
	}

	if sess.Room == "" {
		return
	}
	fx.broadcastExcept(sess.Room, EventUserTyping, TypingPayload{
		Username:  username,
		UserID:    connID,
		Room:      sess.Room,
		Typing:    typing,
		IsPrivate: false,
	}, connID)
}

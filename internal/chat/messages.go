package chat

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/observer/parley/internal/domain"
	"github.com/observer/parley/internal/metrics"
)

// handleSendMessage broadcasts a text message to the sender's room. A
// file blob upgrades it to a file message; empty content with no file is
// dropped silently.
func (e *Engine) handleSendMessage(fx *effects, connID string, p sendMessagePayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "User not found"})
		return
	}
	if sess.Room == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "You must join a room first"})
		return
	}

	content := strings.TrimSpace(p.text())
	file := p.file()
	if content == "" && file == nil {
		return
	}

	msg := &domain.Message{
		Type:      domain.MessageTypeText,
		Content:   content,
		Username:  sess.DisplayName(),
		Room:      sess.Room,
		UserID:    connID,
		Timestamp: time.Now(),
	}
	if file != nil {
		msg.ID = e.messageID("file", connID)
		msg.Type = domain.MessageTypeFile
		msg.File = file
	} else {
		msg.ID = e.messageID("", connID)
	}

	e.storeMessage(msg)
	fx.broadcast(sess.Room, EventMessage, msg)
}

// handleSendFileMessage broadcasts an uploaded file to the sender's
// room. The optional caption is passed through untrimmed.
func (e *Engine) handleSendFileMessage(fx *effects, connID string, p fileMessagePayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "User not found"})
		return
	}
	if sess.Room == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "You must join a room first"})
		return
	}

	file := p.file()
	if file == nil {
		return
	}

	msg := &domain.Message{
		ID:        e.messageID("file", connID),
		Type:      domain.MessageTypeFile,
		Content:   p.Message,
		Username:  sess.DisplayName(),
		Room:      sess.Room,
		UserID:    connID,
		File:      file,
		Timestamp: time.Now(),
	}

	e.storeMessage(msg)
	fx.broadcast(sess.Room, EventMessage, msg)
}

// handleSendReply broadcasts a message that quotes an earlier one. The
// quoted preview is capped at fifty characters.
func (e *Engine) handleSendReply(fx *effects, connID string, p replyPayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "User not found"})
		return
	}

	if p.ReplyToID == "" || p.Message == "" || sess.Room == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "Missing reply data"})
		return
	}

	preview := p.ReplyToContent
	if r := []rune(preview); len(r) > 50 {
		preview = string(r[:50]) + "..."
	}

	msg := &domain.Message{
		ID:        e.messageID("reply", connID),
		Type:      domain.MessageTypeText,
		Content:   strings.TrimSpace(p.Message),
		Username:  sess.DisplayName(),
		Room:      sess.Room,
		UserID:    connID,
		Timestamp: time.Now(),
		ReplyTo: &domain.ReplyRef{
			MessageID: p.ReplyToID,
			Username:  p.ReplyToUsername,
			Content:   preview,
		},
	}

	e.storeMessage(msg)
	fx.broadcast(sess.Room, EventMessage, msg)
}

// handleEditMessage is the websocket face of EditMessage. Failures come
// back as error events on the caller's connection.
func (e *Engine) handleEditMessage(fx *effects, connID string, p editMessagePayload) {
	content := strings.TrimSpace(p.NewContent)
	if p.MessageID == "" || content == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "Missing edit data"})
		return
	}

	payload, err := e.editMessageLocked(connID, p.MessageID, content)
	if err != nil {
		fx.emit(connID, EventError, ErrorPayload{Message: editErrorText(err)})
		return
	}
	fx.broadcast(payload.Room, EventMessageEdited, payload)
}

// handleDeleteMessage is the websocket face of DeleteMessage.
func (e *Engine) handleDeleteMessage(fx *effects, connID string, p deleteMessagePayload) {
	if p.MessageID == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "Missing message ID"})
		return
	}

	payload, err := e.deleteMessageLocked(connID, p.MessageID)
	if err != nil {
		fx.emit(connID, EventError, ErrorPayload{Message: deleteErrorText(err)})
		return
	}
	fx.broadcast(payload.Room, EventMessageDeleted, payload)
}

// EditMessage rewrites a stored room message on behalf of its author.
// File messages are immutable. The returned payload is what the room
// should receive as a message_edited event; HTTP callers publish it
// through the room broadcaster.
func (e *Engine) EditMessage(connID, messageID, newContent string) (*MessageEditedPayload, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editMessageLocked(connID, messageID, newContent)
}

func (e *Engine) editMessageLocked(connID, messageID, newContent string) (*MessageEditedPayload, error) {
	msg, ok := e.messages[messageID]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	if msg.UserID != connID {
		return nil, domain.ErrNotAuthor
	}
	if msg.Type == domain.MessageTypeFile {
		return nil, domain.ErrFileMessage
	}

	now := time.Now()
	msg.Content = newContent
	msg.Edited = true
	msg.EditedAt = &now

	return &MessageEditedPayload{
		MessageID:  messageID,
		NewContent: newContent,
		EditedAt:   now,
		Room:       msg.Room,
		Username:   msg.Username,
	}, nil
}

// DeleteMessage removes a stored room message on behalf of its author,
// along with its reactions. The returned payload is what the room should
// receive as a message_deleted event.
func (e *Engine) DeleteMessage(connID, messageID string) (*MessageDeletedPayload, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteMessageLocked(connID, messageID)
}

func (e *Engine) deleteMessageLocked(connID, messageID string) (*MessageDeletedPayload, error) {
	msg, ok := e.messages[messageID]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	if msg.UserID != connID {
		return nil, domain.ErrNotAuthor
	}

	delete(e.messages, messageID)
	delete(e.reactions, messageID)
	if ids, ok := e.roomMessages[msg.Room]; ok {
		if idx := slices.Index(ids, messageID); idx >= 0 {
			e.roomMessages[msg.Room] = slices.Delete(ids, idx, idx+1)
		}
	}

	return &MessageDeletedPayload{
		MessageID: messageID,
		Room:      msg.Room,
		Username:  msg.Username,
		DeletedAt: time.Now(),
	}, nil
}

func editErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotAuthor):
		return "You can only edit your own messages"
	case errors.Is(err, domain.ErrFileMessage):
		return "File messages cannot be edited"
	default:
		return "Message not found"
	}
}

func deleteErrorText(err error) string {
	if errors.Is(err, domain.ErrNotAuthor) {
		return "You can only delete your own messages"
	}
	return "Message not found"
}

// handlePrivateMessage delivers a direct message to one recipient and
// echoes it back to the sender with fromSelf set. Both sides share a
// conversation log keyed by the unordered connection pair.
func (e *Engine) handlePrivateMessage(fx *effects, connID string, p privateMessagePayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "User not found"})
		return
	}

	to := p.recipient()
	content := strings.TrimSpace(p.text())
	if to == "" || content == "" {
		return
	}

	recipient, ok := e.sessions[to]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "Recipient not found or offline"})
		return
	}

	msg := &domain.PrivateMessage{
		ID:        e.messageID("private", connID),
		Type:      domain.MessageTypePrivate,
		Content:   content,
		From:      sess.DisplayName(),
		FromID:    connID,
		To:        recipient.DisplayName(),
		ToID:      to,
		Username:  sess.DisplayName(),
		Timestamp: time.Now(),
	}

	key := domain.ConversationKey(connID, to)
	e.conversations[key] = append(e.conversations[key], msg)
	metrics.MessagesTotal.WithLabelValues(string(domain.MessageTypePrivate)).Inc()

	fx.emit(to, EventPrivateMessage, msg)

	echo := *msg
	echo.FromSelf = true
	fx.emit(connID, EventPrivateMessage, &echo)
}

// RoomHistory returns the stored messages of a room in insertion order.
// A positive limit keeps only the newest entries.
func (e *Engine) RoomHistory(room string, limit int) []domain.Message {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.roomMessages[room]
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}

	out := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		if msg, ok := e.messages[id]; ok {
			out = append(out, *msg)
		}
	}
	return out
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/observer/parley/internal/chat"
	"github.com/observer/parley/internal/domain"
	"github.com/observer/parley/internal/websocket"
)

// MessagesHandler exposes room history plus HTTP twins of the
// edit_message and delete_message events. Mutations run through the
// same engine checks as the events and broadcast the same notification
// to the room, so REST and WebSocket callers converge on one state.
type MessagesHandler struct {
	engine      *chat.Engine
	broadcaster websocket.RoomBroadcaster
	logger      *slog.Logger
}

// NewMessagesHandler creates a messages handler.
func NewMessagesHandler(engine *chat.Engine, broadcaster websocket.RoomBroadcaster, logger *slog.Logger) *MessagesHandler {
	return &MessagesHandler{
		engine:      engine,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

type editMessageRequest struct {
	MessageID  string `json:"message_id"`
	NewContent string `json:"new_content"`
	UserID     string `json:"user_id"`
}

type deleteMessageRequest struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
}

// History godoc
//
//	@Summary		Room message history
//	@Description	Returns a room's stored messages in insertion order. limit keeps only the newest N; 0 returns everything.
//	@Tags			messages
//	@Produce		json
//	@Param			room	path		string	true	"Room name"
//	@Param			limit	query		int		false	"Maximum number of messages (default 50)"
//	@Success		200		{object}	map[string]interface{}	"Room, messages and count"
//	@Failure		400		{object}	map[string]string		"Invalid limit"
//	@Router			/messages/{room} [get]
func (h *MessagesHandler) History(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	messages := h.engine.RoomHistory(room, limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room":     room,
		"messages": messages,
		"count":    len(messages),
	})
}

// Edit godoc
//
//	@Summary		Edit a message
//	@Description	Rewrites a stored message's content. Only the author may edit, and file messages are immutable. Broadcasts message_edited to the room.
//	@Tags			messages
//	@Accept			json
//	@Produce		json
//	@Param			request	body		editMessageRequest			true	"Edit request"
//	@Success		200		{object}	chat.MessageEditedPayload	"Applied edit"
//	@Failure		400		{object}	map[string]string			"Missing fields or file message"
//	@Failure		403		{object}	map[string]string			"Not the author"
//	@Failure		404		{object}	map[string]string			"Unknown message"
//	@Router			/messages/edit [post]
func (h *MessagesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MessageID == "" || req.NewContent == "" {
		writeError(w, http.StatusBadRequest, "Missing edit data")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	payload, err := h.engine.EditMessage(req.UserID, req.MessageID, req.NewContent)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "Message not found")
		case errors.Is(err, domain.ErrNotAuthor):
			writeError(w, http.StatusForbidden, "You can only edit your own messages")
		case errors.Is(err, domain.ErrFileMessage):
			writeError(w, http.StatusBadRequest, "File messages cannot be edited")
		default:
			writeError(w, http.StatusInternalServerError, "Edit failed")
		}
		return
	}

	if err := h.broadcaster.BroadcastMessageEdited(r.Context(), payload.Room, payload); err != nil {
		h.logger.Warn("failed to broadcast message edit", "message_id", payload.MessageID, "error", err)
	}

	writeJSON(w, http.StatusOK, payload)
}

// Delete godoc
//
//	@Summary		Delete a message
//	@Description	Removes a stored message and its reactions. Only the author may delete. Broadcasts message_deleted to the room.
//	@Tags			messages
//	@Accept			json
//	@Produce		json
//	@Param			request	body		deleteMessageRequest		true	"Delete request"
//	@Success		200		{object}	chat.MessageDeletedPayload	"Applied deletion"
//	@Failure		400		{object}	map[string]string			"Missing fields"
//	@Failure		403		{object}	map[string]string			"Not the author"
//	@Failure		404		{object}	map[string]string			"Unknown message"
//	@Router			/messages/delete [post]
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MessageID == "" {
		writeError(w, http.StatusBadRequest, "Missing message ID")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	payload, err := h.engine.DeleteMessage(req.UserID, req.MessageID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "Message not found")
		case errors.Is(err, domain.ErrNotAuthor):
			writeError(w, http.StatusForbidden, "You can only delete your own messages")
		default:
			writeError(w, http.StatusInternalServerError, "Delete failed")
		}
		return
	}

	if err := h.broadcaster.BroadcastMessageDeleted(r.Context(), payload.Room, payload); err != nil {
		h.logger.Warn("failed to broadcast message deletion", "message_id", payload.MessageID, "error", err)
	}

	writeJSON(w, http.StatusOK, payload)
}

package domain

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	MessageTypeText     MessageType = "message"
	MessageTypeSystem   MessageType = "system"
	MessageTypeFile     MessageType = "file"
	MessageTypePrivate  MessageType = "private"
	MessageTypeStranger MessageType = "stranger_message"
)

// Message is a room or stranger chat message as delivered on the wire.
// File descriptors are kept as raw JSON so whatever the client attached
// survives the round trip untouched.
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	Content   string          `json:"content"`
	Username  string          `json:"username"`
	Room      string          `json:"room,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	File      json.RawMessage `json:"file,omitempty"`
	ReplyTo   *ReplyRef       `json:"replyTo,omitempty"`
	Edited    bool            `json:"edited,omitempty"`
	EditedAt  *time.Time      `json:"edited_at,omitempty"`
}

// ReplyRef points a message at the one it replies to. Content holds a
// preview of the original, truncated server-side.
type ReplyRef struct {
	MessageID string `json:"messageId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
}

// PrivateMessage is a directed user-to-user message. The sender receives
// an echo copy with FromSelf set.
type PrivateMessage struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	From      string      `json:"from"`
	FromID    string      `json:"fromId"`
	To        string      `json:"to"`
	ToID      string      `json:"toId"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	FromSelf  bool        `json:"fromSelf,omitempty"`
}

// FileInfo is the upload descriptor returned by POST /upload.
type FileInfo struct {
	ID             string    `json:"id"`
	Filename       string    `json:"filename"`
	UniqueFilename string    `json:"unique_filename"`
	URL            string    `json:"url"`
	Size           int64     `json:"size"`
	Type           string    `json:"type"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// ReactionGroup aggregates one emoji's reactions on a message.
type ReactionGroup struct {
	Emoji string   `json:"emoji"`
	Users []string `json:"users"`
	Count int      `json:"count"`
}

// ConversationKey returns the canonical key for a private conversation
// between two connections, identical from both sides.
func ConversationKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

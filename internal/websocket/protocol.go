package websocket

import (
	"encoding/json"
	"time"
)

// EventTypeError is the only event the transport emits on its own; all
// other event names originate in the chat engine.
const EventTypeError = "error"

// Message is the base WebSocket message envelope. Every frame in either
// direction carries one.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}

// NewMessage creates a message with the current timestamp, marshaling
// the payload.
func NewMessage(eventType string, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now(),
	}, nil
}

// NewRawMessage wraps an already-marshaled payload. The engine marshals
// payloads while it still holds its state lock, so the transport must
// not touch them again.
func NewRawMessage(eventType string, payload json.RawMessage) *Message {
	return &Message{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// ErrorPayload is the body of transport-level error events.
type ErrorPayload struct {
	Message string `json:"message"`
}

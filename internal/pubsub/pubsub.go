// Package pubsub is the broadcast backbone between the HTTP handlers and the
// websocket hub. REST-origin room events (message edits, deletions) are
// published here and fanned out to the hub's per-room subscriptions. The
// default backend is in-memory; a Redis backend is available for deployments
// that want the bus externalized.
package pubsub

import (
	"context"
	"encoding/json"
)

// Message represents a pub/sub message with typed payload
type Message struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler is a callback for processing messages. Handlers run on the
// publisher's goroutine and must not block.
type Handler func(ctx context.Context, msg *Message)

// Subscription represents an active subscription that can be closed
type Subscription interface {
	// Unsubscribe removes the subscription
	Unsubscribe() error
}

// PubSub defines the interface for publish/subscribe operations.
// All implementations must be safe for concurrent use and must deliver
// messages published to the same topic in publish order.
type PubSub interface {
	// Publish sends a message to all subscribers of the given topic.
	// Returns error if the message could not be published.
	Publish(ctx context.Context, topic string, msg *Message) error

	// Subscribe registers a handler for messages on the given topic.
	// The handler is called for each message published to the topic.
	// Returns a Subscription that can be used to unsubscribe.
	Subscribe(ctx context.Context, topic string, handler Handler) (Subscription, error)

	// Close shuts down the pub/sub system and releases resources.
	Close() error
}

// TopicBuilder helps construct consistent topic names
type TopicBuilder struct{}

// Room returns the topic for a chat room
func (t TopicBuilder) Room(room string) string {
	return "room:" + room
}

// Topics is a helper for building topic names
var Topics = TopicBuilder{}

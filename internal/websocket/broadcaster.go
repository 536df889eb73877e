package websocket

import (
	"context"
	"encoding/json"

	"github.com/observer/parley/internal/chat"
	"github.com/observer/parley/internal/pubsub"
)

// RoomBroadcaster provides a way for API handlers to broadcast events to
// room members. This interface decouples the API layer from the
// WebSocket implementation.
type RoomBroadcaster interface {
	// BroadcastMessageEdited notifies room members that a message was edited
	BroadcastMessageEdited(ctx context.Context, room string, payload *chat.MessageEditedPayload) error

	// BroadcastMessageDeleted notifies room members that a message was deleted
	BroadcastMessageDeleted(ctx context.Context, room string, payload *chat.MessageDeletedPayload) error
}

// PubSubBroadcaster implements RoomBroadcaster using the PubSub system.
// Events travel through the room topic so they reach local clients and,
// with the Redis backend, clients connected to other instances.
type PubSubBroadcaster struct {
	ps pubsub.PubSub
}

// NewPubSubBroadcaster creates a new broadcaster that uses the PubSub system
func NewPubSubBroadcaster(ps pubsub.PubSub) *PubSubBroadcaster {
	return &PubSubBroadcaster{ps: ps}
}

func (b *PubSubBroadcaster) BroadcastMessageEdited(ctx context.Context, room string, payload *chat.MessageEditedPayload) error {
	return b.broadcast(ctx, room, chat.EventMessageEdited, payload)
}

func (b *PubSubBroadcaster) BroadcastMessageDeleted(ctx context.Context, room string, payload *chat.MessageDeletedPayload) error {
	return b.broadcast(ctx, room, chat.EventMessageDeleted, payload)
}

func (b *PubSubBroadcaster) broadcast(ctx context.Context, room, eventType string, payload interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := &pubsub.Message{
		Topic:   pubsub.Topics.Room(room),
		Type:    eventType,
		Payload: payloadBytes,
	}

	return b.ps.Publish(ctx, msg.Topic, msg)
}

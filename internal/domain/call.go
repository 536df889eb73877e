package domain

import "time"

type CallStatus string

const (
	CallStatusCalling CallStatus = "calling"
	CallStatusActive  CallStatus = "active"
)

// CallKind separates stranger-pair calls from direct private calls.
type CallKind string

const (
	CallKindStranger CallKind = "stranger"
	CallKindPrivate  CallKind = "private"
)

// Call is a video call record, keyed by its signaling room. The media
// itself flows peer to peer; the server only tracks who is on the call
// and relays their signaling blobs.
type Call struct {
	RoomID    string     `json:"room_id"`
	Initiator string     `json:"initiator"`
	Partner   string     `json:"partner"`
	Status    CallStatus `json:"status"`
	Kind      CallKind   `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
}

// Involves reports whether the connection is a participant of the call.
func (c *Call) Involves(connID string) bool {
	return c.Initiator == connID || c.Partner == connID
}

// Other returns the call participant opposite connID, or "" when connID
// is not on the call.
func (c *Call) Other(connID string) string {
	switch connID {
	case c.Initiator:
		return c.Partner
	case c.Partner:
		return c.Initiator
	}
	return ""
}

// PrivateCallRoomID returns the signaling room name for a direct call
// between two connections, identical from both sides.
func PrivateCallRoomID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return "private_call_" + a + "_" + b
}

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observer/parley/internal/domain"
)

// startCall rings b from a over an established stranger pair and returns
// the call room.
func startCall(t *testing.T, e *Engine, ft *fakeTransport, a, b string) string {
	t.Helper()
	room := pairStrangers(t, e, ft, a, b)
	dispatch(t, e, a, EventStartVideoCall, nil)
	ft.reset()
	return room
}

// =============================================================================
// Stranger Call Setup Tests
// =============================================================================

func TestStartVideoCall_RequiresStrangerMode(t *testing.T) {
	e, ft := newTestEngine(t)
	e.Connect("a")
	ft.reset()

	dispatch(t, e, "a", EventStartVideoCall, nil)

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Please enter stranger mode first", pl["message"])
}

func TestStartVideoCall_WhileSearching(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	dispatch(t, e, "a", EventFindStranger, nil)
	ft.reset()

	dispatch(t, e, "a", EventStartVideoCall, nil)

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Still searching for stranger. Please wait.", pl["message"])
}

func TestStartVideoCall_NotPaired(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	ft.reset()

	dispatch(t, e, "a", EventStartVideoCall, nil)

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "No stranger connected. Please find a stranger first.", pl["message"])
}

func TestStartVideoCall_RingsPartner(t *testing.T) {
	e, ft := newTestEngine(t)
	room := pairStrangers(t, e, ft, "a", "b")

	dispatch(t, e, "a", EventStartVideoCall, nil)

	incoming := ft.lastEmit(t, "b", EventIncomingVideoCall)
	assert.Equal(t, "a", incoming["caller_id"])
	assert.Equal(t, room, incoming["room_id"])

	initiated := ft.lastEmit(t, "a", EventVideoCallInitiated)
	assert.Equal(t, room, initiated["room_id"])
	assert.Equal(t, "b", initiated["partner_id"])
	assert.Equal(t, "a", initiated["initiator"])

	e.mu.Lock()
	defer e.mu.Unlock()
	call := e.calls[room]
	require.NotNil(t, call)
	assert.Equal(t, domain.CallStatusCalling, call.Status)
	assert.Equal(t, domain.CallKindStranger, call.Kind)
	assert.True(t, e.profiles["a"].InVideoCall)
	assert.True(t, e.profiles["b"].InVideoCall)
}

func TestAcceptVideoCall_NotifiesBothParties(t *testing.T) {
	e, ft := newTestEngine(t)
	room := startCall(t, e, ft, "a", "b")

	dispatch(t, e, "b", EventAcceptVideoCall, map[string]any{"room_id": room})

	for _, conn := range []string{"a", "b"} {
		pl := ft.lastEmit(t, conn, EventVideoCallAccepted)
		assert.Equal(t, room, pl["room_id"])
		assert.Equal(t, "a", pl["initiator"])
		assert.Equal(t, "b", pl["partner"])
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Equal(t, domain.CallStatusActive, e.calls[room].Status)
}

func TestRejectVideoCall_DropsCall(t *testing.T) {
	e, ft := newTestEngine(t)
	room := startCall(t, e, ft, "a", "b")

	dispatch(t, e, "b", EventRejectVideoCall, map[string]any{"room_id": room})

	pl := ft.lastEmit(t, "a", EventVideoCallRejected)
	assert.Equal(t, "Video call was rejected", pl["message"])

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.calls)
	assert.False(t, e.profiles["a"].InVideoCall)
	assert.False(t, e.profiles["b"].InVideoCall)
}

func TestEndVideoCall_NotifiesBothParties(t *testing.T) {
	e, ft := newTestEngine(t)
	room := startCall(t, e, ft, "a", "b")
	dispatch(t, e, "b", EventAcceptVideoCall, map[string]any{"room_id": room})
	ft.reset()

	dispatch(t, e, "a", EventEndVideoCall, map[string]any{"room_id": room})

	for _, conn := range []string{"a", "b"} {
		pl := ft.lastEmit(t, conn, EventVideoCallEnded)
		assert.Equal(t, "Video call ended", pl["message"])
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.calls)
	assert.False(t, e.profiles["a"].InVideoCall)
	assert.False(t, e.profiles["b"].InVideoCall)
}

func TestAcceptVideoCall_UnknownRoom_Silent(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	dispatch(t, e, "b", EventAcceptVideoCall, map[string]any{"room_id": "stranger_x_y"})

	assert.Zero(t, ft.callCount())
}

// =============================================================================
// Private Call Tests
// =============================================================================

func TestPrivateVideoCall_FullFlow(t *testing.T) {
	e, ft := newTestEngine(t)
	connectAndJoin(t, e, ft, "a", "alice", "general")
	e.Connect("b")
	dispatch(t, e, "b", EventJoinRoom, map[string]any{"username": "bob", "room": "general"})
	ft.reset()

	dispatch(t, e, "a", EventStartPrivateVideoCall, map[string]any{"target_user_id": "b"})

	room := domain.PrivateCallRoomID("a", "b")

	incoming := ft.lastEmit(t, "b", EventIncomingPrivateVideoCall)
	assert.Equal(t, "a", incoming["caller_id"])
	assert.Equal(t, "alice", incoming["caller_username"])
	assert.Equal(t, room, incoming["room_id"])

	initiated := ft.lastEmit(t, "a", EventPrivateVideoCallInitiated)
	assert.Equal(t, "b", initiated["partner_id"])
	assert.Equal(t, "bob", initiated["partner_username"])
	assert.Equal(t, "a", initiated["initiator"])

	dispatch(t, e, "b", EventAcceptPrivateVideoCall, map[string]any{"room_id": room})
	for _, conn := range []string{"a", "b"} {
		pl := ft.lastEmit(t, conn, EventPrivateVideoCallAccepted)
		assert.Equal(t, room, pl["room_id"])
	}

	dispatch(t, e, "a", EventEndPrivateVideoCall, map[string]any{"room_id": room})
	for _, conn := range []string{"a", "b"} {
		pl := ft.lastEmit(t, conn, EventPrivateVideoCallEnded)
		assert.Equal(t, "Video call ended", pl["message"])
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.calls)
}

func TestStartPrivateVideoCall_MissingTarget(t *testing.T) {
	e, ft := newTestEngine(t)
	connectAndJoin(t, e, ft, "a", "alice", "general")

	dispatch(t, e, "a", EventStartPrivateVideoCall, nil)

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Target user not specified", pl["message"])
}

func TestStartPrivateVideoCall_UnknownTarget(t *testing.T) {
	e, ft := newTestEngine(t)
	connectAndJoin(t, e, ft, "a", "alice", "general")

	dispatch(t, e, "a", EventStartPrivateVideoCall, map[string]any{"target_user_id": "nobody"})

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Recipient not found or offline", pl["message"])
}

func TestRejectPrivateVideoCall_NotifiesInitiator(t *testing.T) {
	e, ft := newTestEngine(t)
	connectAndJoin(t, e, ft, "a", "alice", "general")
	e.Connect("b")
	dispatch(t, e, "a", EventStartPrivateVideoCall, map[string]any{"target_user_id": "b"})
	ft.reset()

	room := domain.PrivateCallRoomID("a", "b")
	dispatch(t, e, "b", EventRejectPrivateVideoCall, map[string]any{"room_id": room})

	pl := ft.lastEmit(t, "a", EventPrivateVideoCallRejected)
	assert.Equal(t, "Video call was rejected", pl["message"])

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.calls)
}

// =============================================================================
// WebRTC Relay Tests
// =============================================================================

func TestWebRTCOffer_RelayedToPartner(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	offer := map[string]any{"type": "offer", "sdp": "v=0..."}
	dispatch(t, e, "a", EventWebRTCOffer, map[string]any{"offer": offer})

	pl := ft.lastEmit(t, "b", EventWebRTCOffer)
	assert.Equal(t, offer, pl["offer"])
	assert.Equal(t, "a", pl["from"])
}

func TestWebRTCAnswer_RelayedToPartner(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	answer := map[string]any{"type": "answer", "sdp": "v=0..."}
	dispatch(t, e, "b", EventWebRTCAnswer, map[string]any{"answer": answer})

	pl := ft.lastEmit(t, "a", EventWebRTCAnswer)
	assert.Equal(t, answer, pl["answer"])
	assert.Equal(t, "b", pl["from"])
}

func TestWebRTCICECandidate_RelayedToPartner(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	candidate := map[string]any{"candidate": "candidate:1", "sdpMid": "0"}
	dispatch(t, e, "a", EventWebRTCICECandidate, map[string]any{"candidate": candidate})

	pl := ft.lastEmit(t, "b", EventWebRTCICECandidate)
	assert.Equal(t, candidate, pl["candidate"])
	assert.Equal(t, "a", pl["from"])
}

func TestWebRTCOffer_NoPeer(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	ft.reset()

	dispatch(t, e, "a", EventWebRTCOffer, map[string]any{"offer": map[string]any{}})

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Not in a stranger chat session", pl["message"])
}

func TestWebRTCAnswer_NoPeer(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	ft.reset()

	dispatch(t, e, "a", EventWebRTCAnswer, map[string]any{"answer": map[string]any{}})

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Not in a stranger chat session", pl["message"])
}

func TestWebRTCICECandidate_NoPeer_Silent(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	ft.reset()

	dispatch(t, e, "a", EventWebRTCICECandidate, map[string]any{"candidate": map[string]any{}})

	assert.Zero(t, ft.callCount())
}

func TestWebRTCOffer_MissingBlobForwardsNull(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	dispatch(t, e, "a", EventWebRTCOffer, nil)

	pl := ft.lastEmit(t, "b", EventWebRTCOffer)
	blob, present := pl["offer"]
	assert.True(t, present)
	assert.Nil(t, blob)
	assert.Equal(t, "a", pl["from"])
}

func TestWebRTCRelay_UsesCallRegistryAfterUnpair(t *testing.T) {
	e, ft := newTestEngine(t)
	room := startCall(t, e, ft, "a", "b")
	dispatch(t, e, "b", EventAcceptVideoCall, map[string]any{"room_id": room})

	// Skipping dissolves the pair but the call record stays, so late
	// signaling still reaches the old peer.
	dispatch(t, e, "a", EventSkipStranger, nil)
	ft.reset()

	offer := map[string]any{"type": "offer", "sdp": "late"}
	dispatch(t, e, "a", EventWebRTCOffer, map[string]any{"offer": offer})

	pl := ft.lastEmit(t, "b", EventWebRTCOffer)
	assert.Equal(t, offer, pl["offer"])
}

// =============================================================================
// Disconnect Teardown Tests
// =============================================================================

func TestDisconnect_EndsActiveCall(t *testing.T) {
	e, ft := newTestEngine(t)
	room := startCall(t, e, ft, "a", "b")
	dispatch(t, e, "b", EventAcceptVideoCall, map[string]any{"room_id": room})
	ft.reset()

	e.Disconnect("a")

	pl := ft.lastEmit(t, "b", EventVideoCallEnded)
	assert.Equal(t, "Video call ended", pl["message"])

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.calls)
	assert.False(t, e.profiles["b"].InVideoCall)
}

func TestDisconnect_EndsPrivateCall(t *testing.T) {
	e, ft := newTestEngine(t)
	connectAndJoin(t, e, ft, "a", "alice", "general")
	e.Connect("b")
	dispatch(t, e, "a", EventStartPrivateVideoCall, map[string]any{"target_user_id": "b"})
	ft.reset()

	e.Disconnect("b")

	pl := ft.lastEmit(t, "a", EventPrivateVideoCallEnded)
	assert.Equal(t, "Video call ended", pl["message"])

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.calls)
}

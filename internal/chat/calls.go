package chat

import (
	"time"

	"github.com/observer/parley/internal/domain"
	"github.com/observer/parley/internal/metrics"
)

// handleStartVideoCall rings the stranger partner. The call is tracked
// under the pair's room ID until it is rejected, ended or orphaned by a
// disconnect.
func (e *Engine) handleStartVideoCall(fx *effects, connID string) {
	profile, ok := e.profiles[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "Please enter stranger mode first"})
		return
	}

	partner, paired := e.pairs[connID]
	if !paired {
		if profile.Status == domain.StrangerStatusSearching {
			fx.emit(connID, EventError, ErrorPayload{Message: "Still searching for stranger. Please wait."})
		} else {
			fx.emit(connID, EventError, ErrorPayload{Message: "No stranger connected. Please find a stranger first."})
		}
		return
	}

	room := domain.PairRoomID(connID, partner)
	e.calls[room] = &domain.Call{
		RoomID:    room,
		Initiator: connID,
		Partner:   partner,
		Status:    domain.CallStatusCalling,
		Kind:      domain.CallKindStranger,
		CreatedAt: time.Now(),
	}
	metrics.VideoCallsActive.Inc()

	profile.InVideoCall = true
	if p, ok := e.profiles[partner]; ok {
		p.InVideoCall = true
	}

	fx.emit(partner, EventIncomingVideoCall, IncomingVideoCallPayload{
		CallerID: connID,
		RoomID:   room,
	})
	fx.emit(connID, EventVideoCallInitiated, VideoCallInitiatedPayload{
		RoomID:    room,
		PartnerID: partner,
		Initiator: connID,
	})

	e.logger.Info("video call started", "room", room, "initiator", connID)
}

// handleAcceptVideoCall marks a ringing stranger call active and tells
// both parties.
func (e *Engine) handleAcceptVideoCall(fx *effects, connID string, p callRoomPayload) {
	call, ok := e.calls[p.RoomID]
	if !ok || call.Kind != domain.CallKindStranger {
		return
	}

	call.Status = domain.CallStatusActive
	if profile, ok := e.profiles[connID]; ok {
		profile.InVideoCall = true
	}
	if profile, ok := e.profiles[call.Initiator]; ok {
		profile.InVideoCall = true
	}

	accepted := VideoCallAcceptedPayload{
		RoomID:    p.RoomID,
		Initiator: call.Initiator,
		Partner:   connID,
	}
	fx.emit(call.Initiator, EventVideoCallAccepted, accepted)
	fx.emit(connID, EventVideoCallAccepted, accepted)
}

// handleRejectVideoCall drops a ringing stranger call and informs the
// initiator.
func (e *Engine) handleRejectVideoCall(fx *effects, connID string, p callRoomPayload) {
	call, ok := e.calls[p.RoomID]
	if !ok || call.Kind != domain.CallKindStranger {
		return
	}

	e.clearCallFlags(call)
	delete(e.calls, p.RoomID)
	metrics.VideoCallsActive.Dec()

	fx.emit(call.Initiator, EventVideoCallRejected, NoticePayload{Message: "Video call was rejected"})
}

// handleEndVideoCall tears down a stranger call and tells both parties.
func (e *Engine) handleEndVideoCall(fx *effects, connID string, p callRoomPayload) {
	call, ok := e.calls[p.RoomID]
	if !ok || call.Kind != domain.CallKindStranger {
		return
	}

	e.clearCallFlags(call)
	delete(e.calls, p.RoomID)
	metrics.VideoCallsActive.Dec()

	fx.emit(call.Initiator, EventVideoCallEnded, NoticePayload{Message: "Video call ended"})
	fx.emit(call.Partner, EventVideoCallEnded, NoticePayload{Message: "Video call ended"})

	e.logger.Info("video call ended", "room", p.RoomID)
}

// handleStartPrivateVideoCall rings any online user directly, outside
// stranger mode.
func (e *Engine) handleStartPrivateVideoCall(fx *effects, connID string, p privateCallPayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "User not found"})
		return
	}
	if p.TargetUserID == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "Target user not specified"})
		return
	}
	target, ok := e.sessions[p.TargetUserID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "Recipient not found or offline"})
		return
	}

	room := domain.PrivateCallRoomID(connID, p.TargetUserID)
	e.calls[room] = &domain.Call{
		RoomID:    room,
		Initiator: connID,
		Partner:   p.TargetUserID,
		Status:    domain.CallStatusCalling,
		Kind:      domain.CallKindPrivate,
		CreatedAt: time.Now(),
	}
	metrics.VideoCallsActive.Inc()

	fx.emit(p.TargetUserID, EventIncomingPrivateVideoCall, IncomingPrivateVideoCallPayload{
		CallerID:       connID,
		CallerUsername: sess.DisplayName(),
		RoomID:         room,
	})
	fx.emit(connID, EventPrivateVideoCallInitiated, PrivateVideoCallInitiatedPayload{
		RoomID:          room,
		PartnerID:       p.TargetUserID,
		PartnerUsername: target.DisplayName(),
		Initiator:       connID,
	})

	e.logger.Info("private video call started", "room", room, "initiator", connID)
}

// handleAcceptPrivateVideoCall marks a ringing private call active.
func (e *Engine) handleAcceptPrivateVideoCall(fx *effects, connID string, p callRoomPayload) {
	call, ok := e.calls[p.RoomID]
	if !ok || call.Kind != domain.CallKindPrivate {
		return
	}

	call.Status = domain.CallStatusActive

	accepted := VideoCallAcceptedPayload{
		RoomID:    p.RoomID,
		Initiator: call.Initiator,
		Partner:   connID,
	}
	fx.emit(call.Initiator, EventPrivateVideoCallAccepted, accepted)
	fx.emit(connID, EventPrivateVideoCallAccepted, accepted)
}

// handleRejectPrivateVideoCall drops a ringing private call.
func (e *Engine) handleRejectPrivateVideoCall(fx *effects, connID string, p callRoomPayload) {
	call, ok := e.calls[p.RoomID]
	if !ok || call.Kind != domain.CallKindPrivate {
		return
	}

	delete(e.calls, p.RoomID)
	metrics.VideoCallsActive.Dec()

	fx.emit(call.Initiator, EventPrivateVideoCallRejected, NoticePayload{Message: "Video call was rejected"})
}

// handleEndPrivateVideoCall tears down a private call.
func (e *Engine) handleEndPrivateVideoCall(fx *effects, connID string, p callRoomPayload) {
	call, ok := e.calls[p.RoomID]
	if !ok || call.Kind != domain.CallKindPrivate {
		return
	}

	delete(e.calls, p.RoomID)
	metrics.VideoCallsActive.Dec()

	fx.emit(call.Initiator, EventPrivateVideoCallEnded, NoticePayload{Message: "Video call ended"})
	fx.emit(call.Partner, EventPrivateVideoCallEnded, NoticePayload{Message: "Video call ended"})
}

// endCallsFor removes every call naming a disconnecting session and
// notifies the surviving party. Callers hold the engine lock.
func (e *Engine) endCallsFor(fx *effects, connID string) {
	for room, call := range e.calls {
		if !call.Involves(connID) {
			continue
		}

		e.clearCallFlags(call)
		delete(e.calls, room)
		metrics.VideoCallsActive.Dec()

		other := call.Other(connID)
		if other == "" {
			continue
		}
		event := EventVideoCallEnded
		if call.Kind == domain.CallKindPrivate {
			event = EventPrivateVideoCallEnded
		}
		fx.emit(other, event, NoticePayload{Message: "Video call ended"})
	}
}

// clearCallFlags resets the stranger profiles' call flags for a closing
// call. Private calls never set them.
func (e *Engine) clearCallFlags(call *domain.Call) {
	if call.Kind != domain.CallKindStranger {
		return
	}
	if p, ok := e.profiles[call.Initiator]; ok {
		p.InVideoCall = false
	}
	if p, ok := e.profiles[call.Partner]; ok {
		p.InVideoCall = false
	}
}

// callPartner resolves the signaling peer for a connection: the stranger
// pair first, then any tracked call of either kind naming it.
func (e *Engine) callPartner(connID string) string {
	if partner, ok := e.pairs[connID]; ok {
		return partner
	}
	for _, call := range e.calls {
		if other := call.Other(connID); other != "" {
			return other
		}
	}
	return ""
}

// handleWebRTCOffer relays an SDP offer to the signaling peer. The blob
// is forwarded untouched.
func (e *Engine) handleWebRTCOffer(fx *effects, connID string, p offerPayload) {
	partner := e.callPartner(connID)
	if partner == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "Not in a stranger chat session"})
		return
	}
	fx.emit(partner, EventWebRTCOffer, OfferRelayPayload{Offer: p.Offer, From: connID})
}

// handleWebRTCAnswer relays an SDP answer to the signaling peer.
func (e *Engine) handleWebRTCAnswer(fx *effects, connID string, p answerPayload) {
	partner := e.callPartner(connID)
	if partner == "" {
		fx.emit(connID, EventError, ErrorPayload{Message: "Not in a stranger chat session"})
		return
	}
	fx.emit(partner, EventWebRTCAnswer, AnswerRelayPayload{Answer: p.Answer, From: connID})
}

// handleWebRTCICECandidate relays an ICE candidate. Candidates without a
// reachable peer are dropped without an error; trickle ICE keeps sending
// them after teardown.
func (e *Engine) handleWebRTCICECandidate(fx *effects, connID string, p candidatePayload) {
	partner := e.callPartner(connID)
	if partner == "" {
		return
	}
	fx.emit(partner, EventWebRTCICECandidate, CandidateRelayPayload{Candidate: p.Candidate, From: connID})
}

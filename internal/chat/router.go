package chat

import "encoding/json"

// route maps an inbound event to its handler. Called with the engine
// lock held.
func (e *Engine) route(fx *effects, connID, event string, payload json.RawMessage) {
	switch event {
	case EventJoinRoom:
		var p joinRoomPayload
		e.decode(payload, &p)
		e.handleJoinRoom(fx, connID, p)

	case EventSendMessage:
		var p sendMessagePayload
		e.decode(payload, &p)
		e.handleSendMessage(fx, connID, p)

	case EventSendFileMessage:
		var p fileMessagePayload
		e.decode(payload, &p)
		e.handleSendFileMessage(fx, connID, p)

	case EventSendReply:
		var p replyPayload
		e.decode(payload, &p)
		e.handleSendReply(fx, connID, p)

	case EventEditMessage:
		var p editMessagePayload
		e.decode(payload, &p)
		e.handleEditMessage(fx, connID, p)

	case EventDeleteMessage:
		var p deleteMessagePayload
		e.decode(payload, &p)
		e.handleDeleteMessage(fx, connID, p)

	case EventPrivateMessage:
		var p privateMessagePayload
		e.decode(payload, &p)
		e.handlePrivateMessage(fx, connID, p)

	case EventAddReaction:
		var p reactionPayload
		e.decode(payload, &p)
		e.handleAddReaction(fx, connID, p)

	case EventRemoveReaction:
		var p reactionPayload
		e.decode(payload, &p)
		e.handleRemoveReaction(fx, connID, p)

	case EventTypingStart:
		var p typingPayload
		e.decode(payload, &p)
		e.handleTyping(fx, connID, p, true)

	case EventTypingStop:
		var p typingPayload
		e.decode(payload, &p)
		e.handleTyping(fx, connID, p, false)

	case EventEnterStrangerMode:
		e.handleEnterStrangerMode(fx, connID)

	case EventFindStranger:
		var p findStrangerPayload
		e.decode(payload, &p)
		e.handleFindStranger(fx, connID, p)

	case EventSendStrangerMessage:
		var p strangerMessagePayload
		e.decode(payload, &p)
		e.handleSendStrangerMessage(fx, connID, p)

	case EventSkipStranger:
		var p findStrangerPayload
		e.decode(payload, &p)
		e.handleSkipStranger(fx, connID, p)

	case EventStartVideoCall:
		e.handleStartVideoCall(fx, connID)

	case EventAcceptVideoCall:
		var p callRoomPayload
		e.decode(payload, &p)
		e.handleAcceptVideoCall(fx, connID, p)

	case EventRejectVideoCall:
		var p callRoomPayload
		e.decode(payload, &p)
		e.handleRejectVideoCall(fx, connID, p)

	case EventEndVideoCall:
		var p callRoomPayload
		e.decode(payload, &p)
		e.handleEndVideoCall(fx, connID, p)

	case EventStartPrivateVideoCall:
		var p privateCallPayload
		e.decode(payload, &p)
		e.handleStartPrivateVideoCall(fx, connID, p)

	case EventAcceptPrivateVideoCall:
		var p callRoomPayload
		e.decode(payload, &p)
		e.handleAcceptPrivateVideoCall(fx, connID, p)

	case EventRejectPrivateVideoCall:
		var p callRoomPayload
		e.decode(payload, &p)
		e.handleRejectPrivateVideoCall(fx, connID, p)

	case EventEndPrivateVideoCall:
		var p callRoomPayload
		e.decode(payload, &p)
		e.handleEndPrivateVideoCall(fx, connID, p)

	case EventWebRTCOffer:
		var p offerPayload
		e.decode(payload, &p)
		e.handleWebRTCOffer(fx, connID, p)

	case EventWebRTCAnswer:
		var p answerPayload
		e.decode(payload, &p)
		e.handleWebRTCAnswer(fx, connID, p)

	case EventWebRTCICECandidate:
		var p candidatePayload
		e.decode(payload, &p)
		e.handleWebRTCICECandidate(fx, connID, p)

	case EventPing:
		fx.emit(connID, EventPong, NoticePayload{Message: "Server received ping"})

	default:
		e.logger.Debug("unknown event", "conn_id", connID, "event", event)
		fx.emit(connID, EventError, ErrorPayload{Message: "Unknown event type: " + event})
	}
}

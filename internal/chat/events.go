package chat

import (
	"encoding/json"
	"time"

	"github.com/observer/parley/internal/domain"
)

// Client -> server events.
const (
	EventJoinRoom        = "join_room"
	EventSendMessage     = "send_message"
	EventSendFileMessage = "send_file_message"
	EventSendReply       = "send_reply"
	EventEditMessage     = "edit_message"
	EventDeleteMessage   = "delete_message"
	EventPrivateMessage  = "private_message"
	EventAddReaction     = "add_reaction"
	EventRemoveReaction  = "remove_reaction"
	EventTypingStart     = "typing_start"
	EventTypingStop      = "typing_stop"

	EventEnterStrangerMode   = "enter_stranger_mode"
	EventFindStranger        = "find_stranger"
	EventSendStrangerMessage = "send_stranger_message"
	EventSkipStranger        = "skip_stranger"

	EventStartVideoCall  = "start_video_call"
	EventAcceptVideoCall = "accept_video_call"
	EventRejectVideoCall = "reject_video_call"
	EventEndVideoCall    = "end_video_call"

	EventStartPrivateVideoCall  = "start_private_video_call"
	EventAcceptPrivateVideoCall = "accept_private_video_call"
	EventRejectPrivateVideoCall = "reject_private_video_call"
	EventEndPrivateVideoCall    = "end_private_video_call"

	EventWebRTCOffer        = "webrtc_offer"
	EventWebRTCAnswer       = "webrtc_answer"
	EventWebRTCICECandidate = "webrtc_ice_candidate"

	EventPing = "ping"
)

// Server -> client events. The webrtc and private_message names above are
// reused in this direction as well.
const (
	EventConnectionOptions = "connection_options"
	EventJoinSuccess       = "join_success"
	EventMessage           = "message"
	EventMessageEdited     = "message_edited"
	EventMessageDeleted    = "message_deleted"
	EventReactionUpdated   = "reaction_updated"
	EventUserTyping        = "user_typing"
	EventRoomUsers         = "room_users"
	EventError             = "error"
	EventPong              = "pong"

	EventStrangerModeEntered  = "stranger_mode_entered"
	EventSearchingStranger    = "searching_stranger"
	EventStrangerFound        = "stranger_found"
	EventStrangerMessage      = "stranger_message"
	EventStrangerDisconnected = "stranger_disconnected"

	EventIncomingVideoCall  = "incoming_video_call"
	EventVideoCallInitiated = "video_call_initiated"
	EventVideoCallAccepted  = "video_call_accepted"
	EventVideoCallRejected  = "video_call_rejected"
	EventVideoCallEnded     = "video_call_ended"

	EventIncomingPrivateVideoCall  = "incoming_private_video_call"
	EventPrivateVideoCallInitiated = "private_video_call_initiated"
	EventPrivateVideoCallAccepted  = "private_video_call_accepted"
	EventPrivateVideoCallRejected  = "private_video_call_rejected"
	EventPrivateVideoCallEnded     = "private_video_call_ended"
)

// ErrorPayload is the body of every error event.
type ErrorPayload struct {
	Message string `json:"message"`
}

// NoticePayload carries the plain informational events, such as pong or
// stranger_disconnected.
type NoticePayload struct {
	Message string `json:"message"`
}

// ConnectionOptionsPayload greets a fresh connection with the available
// chat modes.
type ConnectionOptionsPayload struct {
	Modes   []string `json:"modes"`
	Message string   `json:"message"`
}

// JoinSuccessPayload confirms a join_room request.
type JoinSuccessPayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
	Message  string `json:"message"`
	Status   string `json:"status"`
}

// RoomUsersPayload is the roster broadcast every time a room's
// membership changes.
type RoomUsersPayload struct {
	Room  string            `json:"room"`
	Users []domain.RoomUser `json:"users"`
	Count int               `json:"count"`
}

// TypingPayload reports typing state. Room is present only for room
// typing, never for private typing.
type TypingPayload struct {
	Username  string `json:"username"`
	UserID    string `json:"userId"`
	Room      string `json:"room,omitempty"`
	Typing    bool   `json:"typing"`
	IsPrivate bool   `json:"isPrivate"`
}

// ReactionUpdatePayload carries the full reaction state of one message.
type ReactionUpdatePayload struct {
	MessageID string                 `json:"messageId"`
	Reactions []domain.ReactionGroup `json:"reactions"`
}

// MessageEditedPayload is broadcast to a room after a successful edit and
// returned to HTTP callers of the edit endpoint.
type MessageEditedPayload struct {
	MessageID  string    `json:"message_id"`
	NewContent string    `json:"new_content"`
	EditedAt   time.Time `json:"edited_at"`
	Room       string    `json:"room"`
	Username   string    `json:"username"`
}

// MessageDeletedPayload is broadcast to a room after a deletion.
type MessageDeletedPayload struct {
	MessageID string    `json:"message_id"`
	Room      string    `json:"room"`
	Username  string    `json:"username"`
	DeletedAt time.Time `json:"deleted_at"`
}

// StrangerModeEnteredPayload hands a fresh anonymous identity to a user
// entering stranger mode.
type StrangerModeEnteredPayload struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
}

// SearchingStrangerPayload acknowledges a search that found no match yet.
type SearchingStrangerPayload struct {
	Message   string   `json:"message"`
	Interests []string `json:"interests"`
}

// StrangerFoundPayload announces a new pairing to both sides.
type StrangerFoundPayload struct {
	Message      string `json:"message"`
	RoomID       string `json:"room_id"`
	PartnerID    string `json:"partner_id"`
	CanVideoChat bool   `json:"can_video_chat"`
}

// IncomingVideoCallPayload rings the callee in a stranger pair.
type IncomingVideoCallPayload struct {
	CallerID string `json:"caller_id"`
	RoomID   string `json:"room_id"`
}

// VideoCallInitiatedPayload confirms call setup to the initiator.
type VideoCallInitiatedPayload struct {
	RoomID    string `json:"room_id"`
	PartnerID string `json:"partner_id"`
	Initiator string `json:"initiator"`
}

// VideoCallAcceptedPayload is sent to both parties when a call is
// answered.
type VideoCallAcceptedPayload struct {
	RoomID    string `json:"room_id"`
	Initiator string `json:"initiator"`
	Partner   string `json:"partner"`
}

// IncomingPrivateVideoCallPayload rings the callee of a private call.
type IncomingPrivateVideoCallPayload struct {
	CallerID       string `json:"caller_id"`
	CallerUsername string `json:"caller_username"`
	RoomID         string `json:"room_id"`
}

// PrivateVideoCallInitiatedPayload confirms private call setup to the
// initiator.
type PrivateVideoCallInitiatedPayload struct {
	RoomID          string `json:"room_id"`
	PartnerID       string `json:"partner_id"`
	PartnerUsername string `json:"partner_username"`
	Initiator       string `json:"initiator"`
}

// OfferRelayPayload forwards an SDP offer to the signaling peer. The
// blob is relayed untouched.
type OfferRelayPayload struct {
	Offer json.RawMessage `json:"offer"`
	From  string          `json:"from"`
}

// AnswerRelayPayload forwards an SDP answer to the signaling peer.
type AnswerRelayPayload struct {
	Answer json.RawMessage `json:"answer"`
	From   string          `json:"from"`
}

// CandidateRelayPayload forwards an ICE candidate to the signaling peer.
type CandidateRelayPayload struct {
	Candidate json.RawMessage `json:"candidate"`
	From      string          `json:"from"`
}

package chat

import (
	"time"

	"github.com/observer/parley/internal/domain"
)

// Snapshot types consumed by the HTTP surface. Every accessor copies
// under the engine lock so callers can marshal at leisure.

// HealthReport is the GET /health body. TotalConnections counts regular
// sessions and stranger profiles separately, so a user in stranger mode
// contributes twice; the split fields carry the real numbers.
type HealthReport struct {
	Status             string    `json:"status"`
	TotalConnections   int       `json:"total_connections"`
	RegularChatActive  int       `json:"regular_chat_active"`
	StrangerChatActive int       `json:"stranger_chat_active"`
	Timestamp          time.Time `json:"timestamp"`
}

// StatsReport is the GET /stats body.
type StatsReport struct {
	RegularChat  RegularChatStats  `json:"regular_chat"`
	StrangerChat StrangerChatStats `json:"stranger_chat"`
}

type RegularChatStats struct {
	TotalUsers           int `json:"total_users"`
	ActiveRooms          int `json:"active_rooms"`
	PrivateConversations int `json:"private_conversations"`
}

type StrangerChatStats struct {
	TotalStrangerUsers int `json:"total_stranger_users"`
	WaitingUsers       int `json:"waiting_users"`
	ActiveChats        int `json:"active_chats"`
	VideoCalls         int `json:"video_calls"`
}

// DebugReport is the GET /debug body.
type DebugReport struct {
	RegularChat  DebugRegularChat  `json:"regular_chat"`
	StrangerChat DebugStrangerChat `json:"stranger_chat"`
}

type DebugRegularChat struct {
	ActiveUsers          int            `json:"active_users"`
	RoomUsers            map[string]int `json:"room_users"`
	PrivateConversations int            `json:"private_conversations"`
	MessageReactions     int            `json:"message_reactions"`
}

type DebugStrangerChat struct {
	TotalStrangerUsers  int                    `json:"total_stranger_users"`
	WaitingUsers        int                    `json:"waiting_users"`
	ActiveStrangerChats int                    `json:"active_stranger_chats"`
	VideoCalls          int                    `json:"video_calls"`
	InterestQueues      map[string]int         `json:"interest_queues"`
	StrangerConnections map[string]string      `json:"stranger_connections"`
	VideoCallDetails    map[string]domain.Call `json:"video_call_details"`
}

// DebugConnectionsReport is the GET /debug/connections body.
type DebugConnectionsReport struct {
	StrangerConnections map[string]string              `json:"stranger_connections"`
	VideoCalls          map[string]domain.Call         `json:"video_calls"`
	StrangerUsers       map[string]StrangerUserSummary `json:"stranger_users"`
	WaitingQueue        []string                       `json:"waiting_queue"`
	TotalConnections    int                            `json:"total_connections"`
}

type StrangerUserSummary struct {
	Username    string                `json:"username"`
	Status      domain.StrangerStatus `json:"status"`
	InVideoCall bool                  `json:"in_video_call"`
	Partner     string                `json:"partner"`
}

// DebugUserReport is the GET /debug/user/{id} body.
type DebugUserReport struct {
	UserID                string                  `json:"user_id"`
	InStrangerConnections bool                    `json:"in_stranger_connections"`
	Partner               string                  `json:"partner"`
	InStrangerUsers       bool                    `json:"in_stranger_users"`
	UserData              *domain.StrangerProfile `json:"user_data"`
	InVideoCalls          bool                    `json:"in_video_calls"`
	VideoCallDetails      []domain.Call           `json:"video_call_details"`
}

// DebugVideoCallsReport is the GET /debug/video_calls body.
type DebugVideoCallsReport struct {
	ActiveVideoCalls    map[string]domain.Call            `json:"active_video_calls"`
	StrangerConnections map[string]string                 `json:"stranger_connections"`
	StrangerUsers       map[string]domain.StrangerProfile `json:"stranger_users"`
}

// Health summarizes liveness for load balancer probes.
func (e *Engine) Health() HealthReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	return HealthReport{
		Status:             "healthy",
		TotalConnections:   len(e.sessions) + len(e.profiles),
		RegularChatActive:  len(e.sessions),
		StrangerChatActive: len(e.profiles),
		Timestamp:          time.Now(),
	}
}

// Stats summarizes both chat surfaces.
func (e *Engine) Stats() StatsReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	return StatsReport{
		RegularChat: RegularChatStats{
			TotalUsers:           len(e.sessions),
			ActiveRooms:          len(e.rooms),
			PrivateConversations: len(e.conversations),
		},
		StrangerChat: StrangerChatStats{
			TotalStrangerUsers: len(e.profiles),
			WaitingUsers:       len(e.waiting),
			ActiveChats:        len(e.pairs) / 2,
			VideoCalls:         len(e.calls),
		},
	}
}

// Debug exposes the matchmaking internals for troubleshooting.
func (e *Engine) Debug() DebugReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	roomUsers := make(map[string]int, len(e.rooms))
	for room, members := range e.rooms {
		roomUsers[room] = len(members)
	}
	queues := make(map[string]int, len(e.interestQueues))
	for interest, queue := range e.interestQueues {
		queues[interest] = len(queue)
	}

	return DebugReport{
		RegularChat: DebugRegularChat{
			ActiveUsers:          len(e.sessions),
			RoomUsers:            roomUsers,
			PrivateConversations: len(e.conversations),
			MessageReactions:     len(e.reactions),
		},
		StrangerChat: DebugStrangerChat{
			TotalStrangerUsers:  len(e.profiles),
			WaitingUsers:        len(e.waiting),
			ActiveStrangerChats: len(e.pairs) / 2,
			VideoCalls:          len(e.calls),
			InterestQueues:      queues,
			StrangerConnections: e.pairsCopy(),
			VideoCallDetails:    e.callsCopy(),
		},
	}
}

// DebugConnections lists every stranger-side connection in detail.
func (e *Engine) DebugConnections() DebugConnectionsReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	users := make(map[string]StrangerUserSummary, len(e.profiles))
	for id, profile := range e.profiles {
		users[id] = StrangerUserSummary{
			Username:    profile.Username,
			Status:      profile.Status,
			InVideoCall: profile.InVideoCall,
			Partner:     profile.Partner,
		}
	}

	waiting := make([]string, len(e.waiting))
	copy(waiting, e.waiting)

	return DebugConnectionsReport{
		StrangerConnections: e.pairsCopy(),
		VideoCalls:          e.callsCopy(),
		StrangerUsers:       users,
		WaitingQueue:        waiting,
		TotalConnections:    len(e.pairs),
	}
}

// DebugUser reports how one connection appears in each registry.
func (e *Engine) DebugUser(connID string) DebugUserReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	report := DebugUserReport{
		UserID:           connID,
		VideoCallDetails: []domain.Call{},
	}

	if partner, ok := e.pairs[connID]; ok {
		report.InStrangerConnections = true
		report.Partner = partner
	}
	if profile, ok := e.profiles[connID]; ok {
		report.InStrangerUsers = true
		cp := *profile
		report.UserData = &cp
	}
	for _, call := range e.calls {
		if call.Involves(connID) {
			report.InVideoCalls = true
			report.VideoCallDetails = append(report.VideoCallDetails, *call)
		}
	}
	return report
}

// DebugVideoCalls dumps the call registry alongside the pairing state.
func (e *Engine) DebugVideoCalls() DebugVideoCallsReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	users := make(map[string]domain.StrangerProfile, len(e.profiles))
	for id, profile := range e.profiles {
		users[id] = *profile
	}

	return DebugVideoCallsReport{
		ActiveVideoCalls:    e.callsCopy(),
		StrangerConnections: e.pairsCopy(),
		StrangerUsers:       users,
	}
}

func (e *Engine) pairsCopy() map[string]string {
	out := make(map[string]string, len(e.pairs))
	for k, v := range e.pairs {
		out[k] = v
	}
	return out
}

func (e *Engine) callsCopy() map[string]domain.Call {
	out := make(map[string]domain.Call, len(e.calls))
	for room, call := range e.calls {
		out[room] = *call
	}
	return out
}

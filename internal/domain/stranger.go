package domain

import "time"

// StrangerStatus tracks where a stranger-mode user is in the
// connected -> searching -> chatting cycle.
type StrangerStatus string

const (
	StrangerStatusConnected StrangerStatus = "connected"
	StrangerStatusSearching StrangerStatus = "searching"
	StrangerStatusChatting  StrangerStatus = "chatting"
)

// StrangerProfile is the anonymous identity a session gets when it
// enters stranger mode.
type StrangerProfile struct {
	Username    string         `json:"username"`
	Status      StrangerStatus `json:"status"`
	Interests   []string       `json:"interests"`
	Partner     string         `json:"partner,omitempty"` // connection ID, set while chatting
	InVideoCall bool           `json:"in_video_call"`
	ConnectedAt time.Time      `json:"connected_at"`
}

// PairRoomID returns the shared room name for a stranger pair. Both
// sides derive the same name regardless of argument order.
func PairRoomID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return "stranger_" + a + "_" + b
}

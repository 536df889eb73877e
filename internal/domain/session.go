package domain

import "time"

// Mode selects which half of the service a connection is using.
type Mode string

const (
	ModeRegular  Mode = "regular"
	ModeStranger Mode = "stranger"
)

// Session represents one live connection and its chat state.
type Session struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Room        string    `json:"room,omitempty"` // current regular room, at most one
	Mode        Mode      `json:"mode"`
	Joined      bool      `json:"joined"`
	ConnectedAt time.Time `json:"connected_at"`
}

// DisplayName returns the username, or the fallback for sessions that
// never joined a room.
func (s *Session) DisplayName() string {
	if s.Username == "" {
		return "Anonymous"
	}
	return s.Username
}

// RoomUser is the per-member entry in a room_users broadcast.
type RoomUser struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	IsOnline bool   `json:"isOnline"`
}

package chat

import "encoding/json"

// Inbound payloads. Several fields accept more than one key because the
// web clients in circulation never agreed on one; the picker methods
// apply the precedence order the server has always honored.

type joinRoomPayload struct {
	Username string `json:"username"`
	User     string `json:"user"`
	Room     string `json:"room"`
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
}

func (p joinRoomPayload) username() string {
	return firstNonEmpty(p.Username, p.User, "Anonymous")
}

func (p joinRoomPayload) room() string {
	return firstNonEmpty(p.Room, p.RoomID, p.RoomName)
}

type sendMessagePayload struct {
	Message  string          `json:"message"`
	Content  string          `json:"content"`
	Text     string          `json:"text"`
	File     json.RawMessage `json:"file"`
	FileInfo json.RawMessage `json:"fileInfo"`
}

func (p sendMessagePayload) text() string {
	return firstNonEmpty(p.Message, p.Content, p.Text)
}

func (p sendMessagePayload) file() json.RawMessage {
	if presentJSON(p.File) {
		return p.File
	}
	if presentJSON(p.FileInfo) {
		return p.FileInfo
	}
	return nil
}

type fileMessagePayload struct {
	File     json.RawMessage `json:"file"`
	FileInfo json.RawMessage `json:"fileInfo"`
	Message  string          `json:"message"`
}

func (p fileMessagePayload) file() json.RawMessage {
	if presentJSON(p.File) {
		return p.File
	}
	if presentJSON(p.FileInfo) {
		return p.FileInfo
	}
	return nil
}

type replyPayload struct {
	ReplyToID       string `json:"replyToId"`
	ReplyToUsername string `json:"replyToUsername"`
	ReplyToContent  string `json:"replyToContent"`
	Message         string `json:"message"`
}

type editMessagePayload struct {
	MessageID  string `json:"message_id"`
	NewContent string `json:"new_content"`
}

type deleteMessagePayload struct {
	MessageID string `json:"message_id"`
}

type privateMessagePayload struct {
	To       string `json:"to"`
	ToUserID string `json:"toUserId"`
	Message  string `json:"message"`
	Content  string `json:"content"`
}

func (p privateMessagePayload) recipient() string {
	return firstNonEmpty(p.To, p.ToUserID)
}

func (p privateMessagePayload) text() string {
	return firstNonEmpty(p.Message, p.Content)
}

type reactionPayload struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	Room      string `json:"room"`
}

type typingPayload struct {
	IsPrivate    bool   `json:"isPrivate"`
	TargetUserID string `json:"targetUserId"`
}

type findStrangerPayload struct {
	Interests []string `json:"interests"`
}

type strangerMessagePayload struct {
	Message string `json:"message"`
}

type callRoomPayload struct {
	RoomID string `json:"room_id"`
}

type privateCallPayload struct {
	TargetUserID string `json:"target_user_id"`
}

type offerPayload struct {
	Offer json.RawMessage `json:"offer"`
}

type answerPayload struct {
	Answer json.RawMessage `json:"answer"`
}

type candidatePayload struct {
	Candidate json.RawMessage `json:"candidate"`
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// presentJSON reports whether a raw field was sent with a real value.
// JSON null counts as absent, matching how clients clear a field.
func presentJSON(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

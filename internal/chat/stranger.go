package chat

import (
	"strings"
	"time"

	"github.com/observer/parley/internal/domain"
	"github.com/observer/parley/internal/metrics"
)

// handleEnterStrangerMode issues a fresh anonymous identity. Re-entering
// discards the old profile, so any existing pairing is dissolved first.
func (e *Engine) handleEnterStrangerMode(fx *effects, connID string) {
	sess, ok := e.sessions[connID]
	if !ok {
		return
	}

	e.unpair(fx, connID)
	e.dequeue(connID)

	username := anonymousUsername()
	e.profiles[connID] = &domain.StrangerProfile{
		Username:    username,
		Status:      domain.StrangerStatusConnected,
		Interests:   []string{},
		ConnectedAt: time.Now(),
	}
	sess.Mode = domain.ModeStranger
	e.updateStrangerGauges()

	fx.emit(connID, EventStrangerModeEntered, StrangerModeEnteredPayload{
		Username: username,
		UserID:   connID,
		Message:  `Welcome to Stranger Chat! Click "Find Stranger" to start.`,
	})

	e.logger.Info("stranger mode entered", "conn_id", connID, "username", username)
}

// handleFindStranger matches the searcher against the queues, interest
// queues first, and enqueues them when nobody suitable is waiting. A new
// search replaces any pairing or queue position the searcher held.
func (e *Engine) handleFindStranger(fx *effects, connID string, p findStrangerPayload) {
	profile, ok := e.profiles[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "Not in stranger mode"})
		return
	}

	e.unpair(fx, connID)
	e.dequeue(connID)

	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	profile.Interests = interests
	profile.Status = domain.StrangerStatusSearching

	if partner := e.popCandidate(connID, interests); partner != "" {
		e.createPair(fx, connID, partner)
		e.updateStrangerGauges()
		return
	}

	if len(interests) > 0 {
		for _, interest := range interests {
			e.interestQueues[interest] = append(e.interestQueues[interest], connID)
		}
	} else {
		e.waiting = append(e.waiting, connID)
	}
	e.updateStrangerGauges()

	fx.emit(connID, EventSearchingStranger, SearchingStrangerPayload{
		Message:   "Looking for a stranger...",
		Interests: interests,
	})
}

// popCandidate walks the searcher's interest queues in the order given,
// then the general queue, popping heads until one with a live profile
// turns up. Dead entries are discarded along the way.
func (e *Engine) popCandidate(connID string, interests []string) string {
	for _, interest := range interests {
		for len(e.interestQueues[interest]) > 0 {
			queue := e.interestQueues[interest]
			candidate := queue[0]
			e.interestQueues[interest] = queue[1:]
			if _, ok := e.profiles[candidate]; ok {
				return candidate
			}
		}
	}

	for len(e.waiting) > 0 {
		candidate := e.waiting[0]
		e.waiting = e.waiting[1:]
		if _, ok := e.profiles[candidate]; ok {
			return candidate
		}
	}
	return ""
}

// createPair links two searchers, joins them to their shared room and
// tells both sides. Callers guarantee both profiles exist.
func (e *Engine) createPair(fx *effects, a, b string) {
	// The candidate may still sit in other interest queues.
	e.dequeue(b)

	e.pairs[a] = b
	e.pairs[b] = a

	pa, pb := e.profiles[a], e.profiles[b]
	pa.Status = domain.StrangerStatusChatting
	pa.Partner = b
	pb.Status = domain.StrangerStatusChatting
	pb.Partner = a

	room := domain.PairRoomID(a, b)
	fx.join(a, room)
	fx.join(b, room)

	found := StrangerFoundPayload{
		Message:      "Stranger found! You can now start chatting.",
		RoomID:       room,
		CanVideoChat: true,
	}
	found.PartnerID = b
	fx.emit(a, EventStrangerFound, found)
	found.PartnerID = a
	fx.emit(b, EventStrangerFound, found)

	e.logger.Info("stranger pair created", "room", room, "a", a, "b", b)
}

// unpair dissolves connID's pairing, if any. The partner is notified and
// returned to the connected state; a video call between them keeps its
// registry entry so signaling can finish.
func (e *Engine) unpair(fx *effects, connID string) {
	partner, ok := e.pairs[connID]
	if !ok {
		return
	}

	room := domain.PairRoomID(connID, partner)

	delete(e.pairs, connID)
	delete(e.pairs, partner)

	if p, ok := e.profiles[partner]; ok {
		p.Status = domain.StrangerStatusConnected
		p.Partner = ""
		fx.emit(partner, EventStrangerDisconnected, NoticePayload{Message: "Stranger has disconnected"})
	}
	if p, ok := e.profiles[connID]; ok {
		p.Status = domain.StrangerStatusConnected
		p.Partner = ""
	}

	fx.leave(connID, room)
	fx.leave(partner, room)

	e.logger.Info("stranger pair dissolved", "room", room)
}

// handleSendStrangerMessage relays a message to the sender's pair room
// under their anonymous identity.
func (e *Engine) handleSendStrangerMessage(fx *effects, connID string, p strangerMessagePayload) {
	partner, ok := e.pairs[connID]
	if !ok {
		fx.emit(connID, EventError, ErrorPayload{Message: "Not in a stranger chat session"})
		return
	}

	content := strings.TrimSpace(p.Message)
	if content == "" {
		return
	}

	var username string
	if profile := e.profiles[connID]; profile != nil {
		username = profile.Username
	}

	msg := &domain.Message{
		ID:        e.messageID("stranger", connID),
		Type:      domain.MessageTypeStranger,
		Content:   content,
		Username:  username,
		UserID:    connID,
		Timestamp: time.Now(),
	}
	metrics.MessagesTotal.WithLabelValues(string(domain.MessageTypeStranger)).Inc()

	fx.broadcast(domain.PairRoomID(connID, partner), EventStrangerMessage, msg)
}

// handleSkipStranger drops the current partner and immediately searches
// again with the supplied interests.
func (e *Engine) handleSkipStranger(fx *effects, connID string, p findStrangerPayload) {
	e.unpair(fx, connID)
	e.handleFindStranger(fx, connID, p)
}

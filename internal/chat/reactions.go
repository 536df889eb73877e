package chat

import (
	"slices"

	"github.com/observer/parley/internal/domain"
)

// Reactions are keyed by display name, so two sessions sharing a
// username share their reaction slot. Each user holds at most one
// reaction per message; picking a new emoji moves it.

// handleAddReaction records a reaction and broadcasts the message's full
// reaction state to the room named in the payload.
func (e *Engine) handleAddReaction(fx *effects, connID string, p reactionPayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		return
	}
	if p.MessageID == "" || p.Emoji == "" || p.Room == "" {
		return
	}
	username := sess.DisplayName()

	groups := e.reactions[p.MessageID]

	// Clear any reaction this user already holds on the message.
	for i, g := range groups {
		if idx := slices.Index(g.users, username); idx >= 0 {
			g.users = slices.Delete(g.users, idx, idx+1)
			if len(g.users) == 0 {
				groups = slices.Delete(groups, i, i+1)
			}
			break
		}
	}

	var target *reactionEntry
	for _, g := range groups {
		if g.emoji == p.Emoji {
			target = g
			break
		}
	}
	if target == nil {
		target = &reactionEntry{emoji: p.Emoji}
		groups = append(groups, target)
	}
	target.users = append(target.users, username)
	e.reactions[p.MessageID] = groups

	fx.broadcast(p.Room, EventReactionUpdated, ReactionUpdatePayload{
		MessageID: p.MessageID,
		Reactions: e.reactionGroups(p.MessageID),
	})
}

// handleRemoveReaction withdraws one user's reaction. Nothing is
// broadcast when there was nothing to remove.
func (e *Engine) handleRemoveReaction(fx *effects, connID string, p reactionPayload) {
	sess, ok := e.sessions[connID]
	if !ok {
		return
	}
	if p.MessageID == "" || p.Emoji == "" || p.Room == "" {
		return
	}
	username := sess.DisplayName()

	groups := e.reactions[p.MessageID]
	removed := false
	for i, g := range groups {
		if g.emoji != p.Emoji {
			continue
		}
		if idx := slices.Index(g.users, username); idx >= 0 {
			g.users = slices.Delete(g.users, idx, idx+1)
			if len(g.users) == 0 {
				groups = slices.Delete(groups, i, i+1)
			}
			removed = true
		}
		break
	}
	if !removed {
		return
	}

	if len(groups) == 0 {
		delete(e.reactions, p.MessageID)
	} else {
		e.reactions[p.MessageID] = groups
	}

	fx.broadcast(p.Room, EventReactionUpdated, ReactionUpdatePayload{
		MessageID: p.MessageID,
		Reactions: e.reactionGroups(p.MessageID),
	})
}

// reactionGroups renders a message's reactions in first-reaction order.
// Always returns a non-nil slice so the payload marshals as an array.
func (e *Engine) reactionGroups(messageID string) []domain.ReactionGroup {
	groups := e.reactions[messageID]
	out := make([]domain.ReactionGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.ReactionGroup{
			Emoji: g.emoji,
			Users: slices.Clone(g.users),
			Count: len(g.users),
		})
	}
	return out
}

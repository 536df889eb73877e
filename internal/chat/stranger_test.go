package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observer/parley/internal/domain"
)

// enterStranger puts a connection into stranger mode and returns its
// anonymous username.
func enterStranger(t *testing.T, e *Engine, ft *fakeTransport, conn string) string {
	t.Helper()
	e.Connect(conn)
	dispatch(t, e, conn, EventEnterStrangerMode, nil)
	pl := ft.lastEmit(t, conn, EventStrangerModeEntered)
	return pl["username"].(string)
}

// pairStrangers matches two fresh connections and returns their shared
// room id.
func pairStrangers(t *testing.T, e *Engine, ft *fakeTransport, a, b string) string {
	t.Helper()
	enterStranger(t, e, ft, a)
	enterStranger(t, e, ft, b)
	dispatch(t, e, a, EventFindStranger, nil)
	dispatch(t, e, b, EventFindStranger, nil)
	pl := ft.lastEmit(t, a, EventStrangerFound)
	room := pl["room_id"].(string)
	ft.reset()
	return room
}

// =============================================================================
// Enter Stranger Mode Tests
// =============================================================================

func TestEnterStrangerMode_IssuesAnonymousIdentity(t *testing.T) {
	e, ft := newTestEngine(t)
	e.Connect("a")
	ft.reset()

	dispatch(t, e, "a", EventEnterStrangerMode, nil)

	pl := ft.lastEmit(t, "a", EventStrangerModeEntered)
	assert.Equal(t, "a", pl["user_id"])
	assert.Equal(t, `Welcome to Stranger Chat! Click "Find Stranger" to start.`, pl["message"])
	assert.NotEmpty(t, pl["username"])

	e.mu.Lock()
	profile := e.profiles["a"]
	sess := e.sessions["a"]
	e.mu.Unlock()
	require.NotNil(t, profile)
	assert.Equal(t, domain.StrangerStatusConnected, profile.Status)
	assert.Equal(t, domain.ModeStranger, sess.Mode)
}

func TestEnterStrangerMode_ReentryIssuesNewIdentityAndUnpairs(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	dispatch(t, e, "a", EventEnterStrangerMode, nil)

	pl := ft.lastEmit(t, "b", EventStrangerDisconnected)
	assert.Equal(t, "Stranger has disconnected", pl["message"])

	e.mu.Lock()
	_, paired := e.pairs["a"]
	e.mu.Unlock()
	assert.False(t, paired)
}

// =============================================================================
// Find Stranger Tests
// =============================================================================

func TestFindStranger_RequiresStrangerMode(t *testing.T) {
	e, ft := newTestEngine(t)
	e.Connect("a")
	ft.reset()

	dispatch(t, e, "a", EventFindStranger, nil)

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Not in stranger mode", pl["message"])
}

func TestFindStranger_NoCandidate_Queues(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	ft.reset()

	dispatch(t, e, "a", EventFindStranger, nil)

	pl := ft.lastEmit(t, "a", EventSearchingStranger)
	assert.Equal(t, "Looking for a stranger...", pl["message"])
	assert.Equal(t, []any{}, pl["interests"])

	e.mu.Lock()
	waiting := append([]string(nil), e.waiting...)
	status := e.profiles["a"].Status
	e.mu.Unlock()
	assert.Equal(t, []string{"a"}, waiting)
	assert.Equal(t, domain.StrangerStatusSearching, status)
}

func TestFindStranger_InterestsQueuedPerInterest(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	ft.reset()

	dispatch(t, e, "a", EventFindStranger, map[string]any{"interests": []string{"go", "chess"}})

	pl := ft.lastEmit(t, "a", EventSearchingStranger)
	assert.Equal(t, []any{"go", "chess"}, pl["interests"])

	e.mu.Lock()
	goQueue := append([]string(nil), e.interestQueues["go"]...)
	chessQueue := append([]string(nil), e.interestQueues["chess"]...)
	waiting := len(e.waiting)
	e.mu.Unlock()
	assert.Equal(t, []string{"a"}, goQueue)
	assert.Equal(t, []string{"a"}, chessQueue)
	assert.Zero(t, waiting, "interest searches skip the general queue")
}

func TestFindStranger_PairsWithWaitingUser(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	enterStranger(t, e, ft, "b")
	dispatch(t, e, "a", EventFindStranger, nil)
	ft.reset()

	dispatch(t, e, "b", EventFindStranger, nil)

	room := domain.PairRoomID("a", "b")

	found := ft.lastEmit(t, "a", EventStrangerFound)
	assert.Equal(t, "Stranger found! You can now start chatting.", found["message"])
	assert.Equal(t, room, found["room_id"])
	assert.Equal(t, "b", found["partner_id"])
	assert.Equal(t, true, found["can_video_chat"])

	found = ft.lastEmit(t, "b", EventStrangerFound)
	assert.Equal(t, "a", found["partner_id"])

	assert.True(t, ft.inRoom("a", room))
	assert.True(t, ft.inRoom("b", room))

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Equal(t, "b", e.pairs["a"])
	assert.Equal(t, "a", e.pairs["b"])
	assert.Equal(t, domain.StrangerStatusChatting, e.profiles["a"].Status)
	assert.Equal(t, "a", e.profiles["b"].Partner)
	assert.Empty(t, e.waiting)
}

func TestFindStranger_InterestQueueBeatsGeneralQueue(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "early")
	enterStranger(t, e, ft, "hobbyist")
	enterStranger(t, e, ft, "seeker")
	dispatch(t, e, "early", EventFindStranger, nil)
	dispatch(t, e, "hobbyist", EventFindStranger, map[string]any{"interests": []string{"go"}})
	ft.reset()

	dispatch(t, e, "seeker", EventFindStranger, map[string]any{"interests": []string{"go"}})

	found := ft.lastEmit(t, "seeker", EventStrangerFound)
	assert.Equal(t, "hobbyist", found["partner_id"],
		"shared-interest matches take precedence over the older general entry")

	e.mu.Lock()
	waiting := append([]string(nil), e.waiting...)
	e.mu.Unlock()
	assert.Equal(t, []string{"early"}, waiting)
}

func TestFindStranger_SkipsStaleQueueEntries(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	enterStranger(t, e, ft, "b")
	dispatch(t, e, "b", EventFindStranger, nil)

	// Seed entries whose profiles are long gone ahead of the live one.
	e.mu.Lock()
	e.waiting = append([]string{"ghost1", "ghost2"}, e.waiting...)
	e.mu.Unlock()
	ft.reset()

	dispatch(t, e, "a", EventFindStranger, nil)

	found := ft.lastEmit(t, "a", EventStrangerFound)
	assert.Equal(t, "b", found["partner_id"])

	e.mu.Lock()
	waiting := len(e.waiting)
	e.mu.Unlock()
	assert.Zero(t, waiting, "stale entries are discarded during the scan")
}

func TestFindStranger_NewSearchReplacesQueuePosition(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	dispatch(t, e, "a", EventFindStranger, nil)
	ft.reset()

	dispatch(t, e, "a", EventFindStranger, map[string]any{"interests": []string{"go"}})

	e.mu.Lock()
	waiting := len(e.waiting)
	goQueue := append([]string(nil), e.interestQueues["go"]...)
	e.mu.Unlock()
	assert.Zero(t, waiting)
	assert.Equal(t, []string{"a"}, goQueue)
}

func TestFindStranger_WhilePaired_DissolvesOldPair(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	dispatch(t, e, "a", EventFindStranger, nil)

	pl := ft.lastEmit(t, "b", EventStrangerDisconnected)
	assert.Equal(t, "Stranger has disconnected", pl["message"])

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.pairs)
	assert.Equal(t, domain.StrangerStatusSearching, e.profiles["a"].Status)
	assert.Equal(t, domain.StrangerStatusConnected, e.profiles["b"].Status)
	assert.Empty(t, e.profiles["b"].Partner)
}

// =============================================================================
// Stranger Message Tests
// =============================================================================

func TestSendStrangerMessage_RelaysToPairRoom(t *testing.T) {
	e, ft := newTestEngine(t)
	room := pairStrangers(t, e, ft, "a", "b")

	e.mu.Lock()
	anonName := e.profiles["a"].Username
	e.mu.Unlock()

	dispatch(t, e, "a", EventSendStrangerMessage, map[string]any{"message": "  hello  "})

	pl := ft.lastBroadcast(t, room, EventStrangerMessage)
	assert.Equal(t, "stranger_message", pl["type"])
	assert.Equal(t, "hello", pl["content"])
	assert.Equal(t, anonName, pl["username"])
	assert.Equal(t, "a", pl["userId"])
	assert.True(t, strings.HasPrefix(pl["id"].(string), "stranger_a_"))
	_, hasRoom := pl["room"]
	assert.False(t, hasRoom)
}

func TestSendStrangerMessage_NotPaired(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	ft.reset()

	dispatch(t, e, "a", EventSendStrangerMessage, map[string]any{"message": "hello"})

	pl := ft.lastEmit(t, "a", EventError)
	assert.Equal(t, "Not in a stranger chat session", pl["message"])
}

func TestSendStrangerMessage_EmptySilent(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	dispatch(t, e, "a", EventSendStrangerMessage, map[string]any{"message": "   "})

	assert.Zero(t, ft.callCount())
}

// =============================================================================
// Skip And Disconnect Tests
// =============================================================================

func TestSkipStranger_RepairsWithNextSearcher(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")
	enterStranger(t, e, ft, "c")
	dispatch(t, e, "c", EventFindStranger, nil)
	ft.reset()

	dispatch(t, e, "a", EventSkipStranger, nil)

	pl := ft.lastEmit(t, "b", EventStrangerDisconnected)
	assert.Equal(t, "Stranger has disconnected", pl["message"])

	found := ft.lastEmit(t, "a", EventStrangerFound)
	assert.Equal(t, "c", found["partner_id"])

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Equal(t, "c", e.pairs["a"])
	assert.Equal(t, "a", e.pairs["c"])
	_, bPaired := e.pairs["b"]
	assert.False(t, bPaired)
	assert.Equal(t, domain.StrangerStatusConnected, e.profiles["b"].Status)
}

func TestSkipStranger_NobodyWaiting_Requeues(t *testing.T) {
	e, ft := newTestEngine(t)
	pairStrangers(t, e, ft, "a", "b")

	dispatch(t, e, "a", EventSkipStranger, nil)

	pl := ft.lastEmit(t, "a", EventSearchingStranger)
	assert.Equal(t, "Looking for a stranger...", pl["message"])

	e.mu.Lock()
	waiting := append([]string(nil), e.waiting...)
	e.mu.Unlock()
	assert.Equal(t, []string{"a"}, waiting)
}

func TestDisconnect_NotifiesPartnerAndCleansUp(t *testing.T) {
	e, ft := newTestEngine(t)
	room := pairStrangers(t, e, ft, "a", "b")

	e.Disconnect("a")

	pl := ft.lastEmit(t, "b", EventStrangerDisconnected)
	assert.Equal(t, "Stranger has disconnected", pl["message"])
	assert.False(t, ft.inRoom("a", room))
	assert.False(t, ft.inRoom("b", room))

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.pairs)
	_, hasProfile := e.profiles["a"]
	assert.False(t, hasProfile)
	assert.Equal(t, domain.StrangerStatusConnected, e.profiles["b"].Status)
	assert.Empty(t, e.profiles["b"].Partner)
}

func TestDisconnect_RemovesQueueEntries(t *testing.T) {
	e, ft := newTestEngine(t)
	enterStranger(t, e, ft, "a")
	dispatch(t, e, "a", EventFindStranger, map[string]any{"interests": []string{"go", "chess"}})
	enterStranger(t, e, ft, "b")
	dispatch(t, e, "b", EventFindStranger, nil)

	e.Disconnect("a")
	e.Disconnect("b")

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Empty(t, e.waiting)
	assert.Empty(t, e.interestQueues["go"])
	assert.Empty(t, e.interestQueues["chess"])
}

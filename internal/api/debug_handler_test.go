package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observer/parley/internal/chat"
)

// newDebugTestKit builds a handler over an engine with one regular user
// and one matched stranger pair.
func newDebugTestKit(t *testing.T) *DebugHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	engine := chat.NewEngine(logger)

	engine.Connect("u1")
	engine.Dispatch("u1", chat.EventJoinRoom, json.RawMessage(`{"username":"alice","room":"general"}`))

	for _, conn := range []string{"s1", "s2"} {
		engine.Connect(conn)
		engine.Dispatch(conn, chat.EventEnterStrangerMode, nil)
	}
	engine.Dispatch("s1", chat.EventFindStranger, nil)
	engine.Dispatch("s2", chat.EventFindStranger, nil)

	return NewDebugHandler(engine)
}

func getJSON(t *testing.T, handler http.HandlerFunc, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// =============================================================================
// Status Endpoint Tests
// =============================================================================

func TestRoot_Banner(t *testing.T) {
	handler := newDebugTestKit(t)

	body := getJSON(t, handler.Root, "/")

	assert.Equal(t, "Multi-Feature Chat API", body["message"])
	assert.Equal(t, "running", body["status"])
	features, ok := body["features"].([]any)
	require.True(t, ok)
	assert.Len(t, features, 9)
	assert.Contains(t, features, "Random stranger matching")
}

func TestHealth_Response(t *testing.T) {
	handler := newDebugTestKit(t)

	body := getJSON(t, handler.Health, "/health")

	assert.Equal(t, "healthy", body["status"])
	// Three sessions plus two stranger profiles
	assert.Equal(t, float64(5), body["total_connections"])
	assert.Equal(t, float64(3), body["regular_chat_active"])
	assert.Equal(t, float64(2), body["stranger_chat_active"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestStats_Response(t *testing.T) {
	handler := newDebugTestKit(t)

	body := getJSON(t, handler.Stats, "/stats")

	regular, ok := body["regular_chat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), regular["total_users"])
	assert.Equal(t, float64(1), regular["active_rooms"])

	stranger, ok := body["stranger_chat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), stranger["total_stranger_users"])
	assert.Equal(t, float64(1), stranger["active_chats"])
	assert.Equal(t, float64(0), stranger["waiting_users"])
}

// =============================================================================
// Debug Endpoint Tests
// =============================================================================

func TestDebug_Response(t *testing.T) {
	handler := newDebugTestKit(t)

	body := getJSON(t, handler.Debug, "/debug")

	stranger, ok := body["stranger_chat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), stranger["active_stranger_chats"])

	pairs, ok := stranger["stranger_connections"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "s2", pairs["s1"])
	assert.Equal(t, "s1", pairs["s2"])
}

func TestDebugConnections_Response(t *testing.T) {
	handler := newDebugTestKit(t)

	body := getJSON(t, handler.Connections, "/debug/connections")

	assert.Equal(t, float64(2), body["total_connections"])
	users, ok := body["stranger_users"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, users, "s1")
	assert.Contains(t, users, "s2")
}

func TestDebugUser_Response(t *testing.T) {
	handler := newDebugTestKit(t)

	req := httptest.NewRequest(http.MethodGet, "/debug/user/s1", nil)
	req.SetPathValue("id", "s1")
	rec := httptest.NewRecorder()
	handler.User(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "s1", body["user_id"])
	assert.Equal(t, true, body["in_stranger_connections"])
	assert.Equal(t, "s2", body["partner"])
	assert.Equal(t, true, body["in_stranger_users"])
	assert.NotNil(t, body["user_data"])
}

func TestDebugVideoCalls_Response(t *testing.T) {
	handler := newDebugTestKit(t)

	body := getJSON(t, handler.VideoCalls, "/debug/video_calls")

	assert.Contains(t, body, "active_video_calls")
	assert.Contains(t, body, "stranger_connections")
	assert.Contains(t, body, "stranger_users")
}

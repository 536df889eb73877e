package api

import (
	"net/http"

	"github.com/observer/parley/internal/chat"
)

// DebugHandler serves the operational surface: the service banner, the
// health and stats summaries and the matchmaking debug dumps. Every
// response is a point-in-time snapshot copied out of the engine.
type DebugHandler struct {
	engine *chat.Engine
}

// NewDebugHandler creates a debug handler over the engine.
func NewDebugHandler(engine *chat.Engine) *DebugHandler {
	return &DebugHandler{engine: engine}
}

type bannerResponse struct {
	Message  string   `json:"message"`
	Status   string   `json:"status"`
	Features []string `json:"features"`
}

// Root godoc
//
//	@Summary		Service banner
//	@Description	Names the service and lists its feature set
//	@Tags			status
//	@Produce		json
//	@Success		200	{object}	bannerResponse	"Service banner"
//	@Router			/ [get]
func (h *DebugHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bannerResponse{
		Message: "Multi-Feature Chat API",
		Status:  "running",
		Features: []string{
			"Regular chat rooms",
			"Private messaging",
			"File sharing",
			"Message reactions",
			"Message replies",
			"Random stranger matching",
			"Peer-to-peer video chat with WebRTC",
			"Interest-based matching",
			"Anonymous usernames",
		},
	})
}

// Health godoc
//
//	@Summary		Health check
//	@Description	Connection counts for both chat surfaces, for load balancer probes
//	@Tags			status
//	@Produce		json
//	@Success		200	{object}	chat.HealthReport	"Liveness summary"
//	@Router			/health [get]
func (h *DebugHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Health())
}

// Stats godoc
//
//	@Summary		Usage statistics
//	@Description	Aggregate counts for regular rooms and stranger matchmaking
//	@Tags			status
//	@Produce		json
//	@Success		200	{object}	chat.StatsReport	"Usage counters"
//	@Router			/stats [get]
func (h *DebugHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Stats())
}

// Debug godoc
//
//	@Summary		Full state dump
//	@Description	Room sizes, interest queues, the pair map and call registry
//	@Tags			debug
//	@Produce		json
//	@Success		200	{object}	chat.DebugReport	"Engine state"
//	@Router			/debug [get]
func (h *DebugHandler) Debug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Debug())
}

// Connections godoc
//
//	@Summary		Stranger connection dump
//	@Description	Pair map, call registry, per-user profile summaries and the waiting queue
//	@Tags			debug
//	@Produce		json
//	@Success		200	{object}	chat.DebugConnectionsReport	"Stranger-side state"
//	@Router			/debug/connections [get]
func (h *DebugHandler) Connections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.DebugConnections())
}

// User godoc
//
//	@Summary		Single user state
//	@Description	How one connection ID appears in each stranger-side registry
//	@Tags			debug
//	@Produce		json
//	@Param			id	path		string				true	"Connection ID"
//	@Success		200	{object}	chat.DebugUserReport	"Per-registry membership"
//	@Router			/debug/user/{id} [get]
func (h *DebugHandler) User(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.DebugUser(r.PathValue("id")))
}

// VideoCalls godoc
//
//	@Summary		Video call dump
//	@Description	Active calls alongside the pair map and stranger profiles
//	@Tags			debug
//	@Produce		json
//	@Success		200	{object}	chat.DebugVideoCallsReport	"Call registry"
//	@Router			/debug/video_calls [get]
func (h *DebugHandler) VideoCalls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.DebugVideoCalls())
}

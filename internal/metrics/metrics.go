// Package metrics exposes the service's Prometheus instrumentation.
// Collectors register on the default registry at package load and are
// served from GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parley"

var (
	// ConnectionsActive tracks open websocket sessions.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "connections_active",
		Help:      "Number of open websocket connections.",
	})

	// EventsTotal counts client events entering the dispatcher.
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "events_total",
		Help:      "Client events dispatched, labeled by event type.",
	}, []string{"event"})

	// MessagesTotal counts delivered chat messages by message type.
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "messages_total",
		Help:      "Messages delivered, labeled by message type.",
	}, []string{"type"})

	// MessagesDroppedTotal counts messages discarded because a client's
	// send buffer was full.
	MessagesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "messages_dropped_total",
		Help:      "Outbound messages dropped due to slow clients.",
	})

	// StrangerPairsActive tracks stranger pairs currently chatting.
	StrangerPairsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "stranger",
		Name:      "pairs_active",
		Help:      "Stranger pairs currently chatting.",
	})

	// StrangerSearching tracks users queued for a stranger match.
	StrangerSearching = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "stranger",
		Name:      "searching",
		Help:      "Users currently searching for a stranger.",
	})

	// VideoCallsActive tracks tracked video calls across both kinds.
	VideoCallsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "calls",
		Name:      "active",
		Help:      "Video calls currently tracked.",
	})

	// UploadsTotal counts file uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "uploads",
		Name:      "total",
		Help:      "File uploads, labeled by outcome.",
	}, []string{"status"})
)

// Package metrics exposes Prometheus collectors for the realtime layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "animolab_ws_connections_active",
		Help: "Currently registered websocket connections.",
	})

	MessagesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "animolab_chat_messages_relayed_total",
		Help: "Chat messages delivered to room members (per recipient).",
	})

	SnapshotRefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "animolab_reservation_refresh_failures_total",
		Help: "Reservation store lookups that failed and fell back to the previous snapshot.",
	})

	SnapshotBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "animolab_reservation_broadcasts_total",
		Help: "Full-fanout reservation snapshot pushes.",
	})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

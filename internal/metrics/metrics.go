package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections tracks currently registered websocket connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roomcast_active_connections",
		Help: "Number of currently connected clients.",
	})

	// FramesSent counts outbound frames actually handed to a connection.
	FramesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomcast_frames_sent_total",
		Help: "Outbound frames delivered to client send queues.",
	})

	// FramesDropped counts sends lost to backpressure or closed connections.
	FramesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomcast_frames_dropped_total",
		Help: "Outbound frames dropped instead of delivered.",
	})

	// BusFrames counts frames relayed to or from the cross-instance bus.
	BusFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomcast_bus_frames_total",
		Help: "Frames exchanged with the redis relay bus.",
	}, []string{"direction"})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks supervisor activity.
type Metrics struct {
	connected         prometheus.Gauge
	connectionsTotal  prometheus.Counter
	connectFailures   *prometheus.CounterVec
	sessionsEnded     *prometheus.CounterVec
	framesReceived    prometheus.Counter
	decodeFailures    *prometheus.CounterVec
	pollsSent         prometheus.Counter
	backoffSeconds    prometheus.Gauge
	reconnectAttempts prometheus.Counter
}

// NewMetrics creates the supervisor metrics and registers them with reg.
// A nil reg leaves them unregistered, which tests use to read values
// directly.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "connected",
			Help:      "1 while a telemetry websocket is open",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "connections_total",
			Help:      "Successful telemetry connections",
		}),
		connectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "connect_failures_total",
			Help:      "Failed connection attempts by error kind",
		}, []string{"kind"}),
		sessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "sessions_ended_total",
			Help:      "Connected sessions that ended, by reason",
		}, []string{"reason"}),
		framesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "frames_received_total",
			Help:      "Text frames read from the printer",
		}),
		decodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "decode_failures_total",
			Help:      "Frames dropped by the decoder, by reason",
		}, []string{"reason"}),
		pollsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "polls_sent_total",
			Help:      "Status requests written to the printer",
		}),
		backoffSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "backoff_seconds",
			Help:      "Delay before the pending reconnect attempt",
		}),
		reconnectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbon",
			Subsystem: "monitor",
			Name:      "reconnect_attempts_total",
			Help:      "Reconnect attempts after a failure",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.connected,
			m.connectionsTotal,
			m.connectFailures,
			m.sessionsEnded,
			m.framesReceived,
			m.decodeFailures,
			m.pollsSent,
			m.backoffSeconds,
			m.reconnectAttempts,
		)
	}
	return m
}

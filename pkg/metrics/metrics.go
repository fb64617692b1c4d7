package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChannelMetrics exposes counters and gauges for the per-consultation
// real-time channel.
type ChannelMetrics struct {
	connectedClients  prometheus.Gauge
	openChannels      prometheus.Gauge
	eventsBroadcast   *prometheus.CounterVec
	eventsDropped     *prometheus.CounterVec
	messagesPersisted prometheus.Counter
}

func NewChannelMetrics(reg prometheus.Registerer) *ChannelMetrics {
	m := &ChannelMetrics{
		connectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "telemed",
			Subsystem: "channel",
			Name:      "connected_clients",
			Help:      "Currently connected websocket clients",
		}),
		openChannels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "telemed",
			Subsystem: "channel",
			Name:      "open_consultations",
			Help:      "Consultations with at least one subscriber",
		}),
		eventsBroadcast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telemed",
			Subsystem: "channel",
			Name:      "events_broadcast_total",
			Help:      "Events fanned out to subscribers",
		}, []string{"event_type"}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telemed",
			Subsystem: "channel",
			Name:      "events_dropped_total",
			Help:      "Events dropped because a subscriber buffer was full",
		}, []string{"event_type"}),
		messagesPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "telemed",
			Subsystem: "channel",
			Name:      "messages_persisted_total",
			Help:      "Chat messages appended to the consultation log",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.connectedClients, m.openChannels, m.eventsBroadcast, m.eventsDropped, m.messagesPersisted)
	return m
}

func (m *ChannelMetrics) ClientConnected() {
	if m == nil {
		return
	}
	m.connectedClients.Inc()
}

func (m *ChannelMetrics) ClientDisconnected() {
	if m == nil {
		return
	}
	m.connectedClients.Dec()
}

func (m *ChannelMetrics) SetOpenChannels(n int) {
	if m == nil {
		return
	}
	m.openChannels.Set(float64(n))
}

func (m *ChannelMetrics) EventBroadcast(eventType string) {
	if m == nil {
		return
	}
	m.eventsBroadcast.WithLabelValues(eventType).Inc()
}

func (m *ChannelMetrics) EventDropped(eventType string) {
	if m == nil {
		return
	}
	m.eventsDropped.WithLabelValues(eventType).Inc()
}

func (m *ChannelMetrics) MessagePersisted() {
	if m == nil {
		return
	}
	m.messagesPersisted.Inc()
}

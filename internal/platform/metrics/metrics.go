package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mesaya"

// Metrics groups the collectors exported by the booking service. A nil *Metrics is valid and
// records nothing, which keeps tests free of registry setup.
type Metrics struct {
	registry     *prom.Registry
	operations   *prom.CounterVec
	chatRequests *prom.CounterVec
	cacheLookups *prom.CounterVec
	wsClients    prom.Gauge
	kafkaEvents  *prom.CounterVec
}

// New registers the service collectors (plus Go and process collectors) on a fresh registry.
func New() *Metrics {
	registry := prom.NewRegistry()
	m := &Metrics{
		registry: registry,
		operations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_operations_total",
			Help:      "Reservation operations by action and result.",
		}, []string{"action", "result"}),
		chatRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat requests by resolved action.",
		}, []string{"action"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "availability_cache_lookups_total",
			Help:      "Occupancy cache lookups by outcome.",
		}, []string{"outcome"}),
		wsClients: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Currently connected websocket clients.",
		}),
		kafkaEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_events_total",
			Help:      "Reservation events exchanged with Kafka by direction and result.",
		}, []string{"direction", "result"}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.chatRequests,
		m.cacheLookups,
		m.wsClients,
		m.kafkaEvents,
	)
	return m
}

func (m *Metrics) Registry() *prom.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) Operation(action, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(action, result).Inc()
}

func (m *Metrics) ChatRequest(action string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(action).Inc()
}

func (m *Metrics) ClientConnected() {
	if m == nil {
		return
	}
	m.wsClients.Inc()
}

func (m *Metrics) ClientDisconnected() {
	if m == nil {
		return
	}
	m.wsClients.Dec()
}

// KafkaEvent counts a produced ("out") or consumed ("in") event.
func (m *Metrics) KafkaEvent(direction, result string) {
	if m == nil {
		return
	}
	m.kafkaEvents.WithLabelValues(direction, result).Inc()
}

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metrics
				}
			}
			if metric.GetGauge() != nil {
				return metric.GetGauge().GetValue()
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsRecord(t *testing.T) {
	m := New()
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.Operation("created", "ok")
	m.ChatRequest("book")
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()
	m.KafkaEvent("out", "ok")

	assert.Equal(t, 2.0, counterValue(t, m, "mesaya_availability_cache_lookups_total", map[string]string{"outcome": "hit"}))
	assert.Equal(t, 1.0, counterValue(t, m, "mesaya_availability_cache_lookups_total", map[string]string{"outcome": "miss"}))
	assert.Equal(t, 1.0, counterValue(t, m, "mesaya_reservation_operations_total", map[string]string{"action": "created", "result": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, m, "mesaya_chat_requests_total", map[string]string{"action": "book"}))
	assert.Equal(t, 1.0, counterValue(t, m, "mesaya_websocket_clients", nil))
	assert.Equal(t, 1.0, counterValue(t, m, "mesaya_kafka_events_total", map[string]string{"direction": "out", "result": "ok"}))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.CacheHit()
	m.Operation("created", "ok")
	m.ClientConnected()
	assert.Nil(t, m.Registry())
}

func TestHandlerServesTextFormat(t *testing.T) {
	m := New()
	m.ChatRequest("menu")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), `mesaya_chat_requests_total{action="menu"} 1`))
}

package domain

import "time"

// Message is the envelope exchanged with websocket clients and carried over Kafka.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// MetadataValue returns the trimmed metadata entry for key, or "" when absent.
func (m *Message) MetadataValue(key string) string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return trim(m.Metadata[key])
}

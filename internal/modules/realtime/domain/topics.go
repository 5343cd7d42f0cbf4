package domain

import "strings"

const (
	SystemEntity       = "system"
	ReservationsEntity = "reservations"
	AvailabilityEntity = "availability"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionSnapshot  = "snapshot"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCancelled = "cancelled"

	MetadataDate         = "date"
	MetadataPreviousDate = "previousDate"
	MetadataOrigin       = "origin"
	MetadataSessionID    = "sessionId"
)

// ReservationActions lists the reservation lifecycle actions streamed to clients.
var ReservationActions = []string{ActionCreated, ActionUpdated, ActionCancelled}

// SnapshotTopic returns the canonical snapshot topic for the given entity.
func SnapshotTopic(entity string) string {
	return buildEntityTopic(entity, ActionSnapshot)
}

// ErrorTopic returns the canonical error topic for the given entity.
func ErrorTopic(entity string) string {
	return buildEntityTopic(entity, ActionError)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

// AvailabilityTopics lists the topics a date-scoped availability client subscribes to.
func AvailabilityTopics() []string {
	topics := []string{SnapshotTopic(AvailabilityEntity), ErrorTopic(AvailabilityEntity)}
	for _, action := range ReservationActions {
		topics = append(topics, CustomTopic(ReservationsEntity, action))
	}
	return topics
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := trim(entity)
	cleanAction := strings.ToLower(trim(action))
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaBooking/internal/modules/reservations/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_DIRECTORY", "LOG_LEVEL", "LOG_FORMAT", "RESTAURANT_NAME", "TOTAL_SEATS",
		"OPEN_TIME", "CLOSE_TIME", "SLOT_MINUTES", "TURN_MINUTES", "DAYS_OPEN", "STORAGE_DRIVER",
		"DATABASE_URL", "KAFKA_BROKERS", "KAFKA_BROKER", "KAFKA_TOPIC", "KAFKA_GROUP_ID",
		"JWT_SECRET", "JWT_ISSUER", "JWT_TTL", "STAFF_USERNAME", "STAFF_PASSWORD_HASH",
		"SESSION_IDLE_TTL", "INSTANCE_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, domain.DefaultRestaurantConfig(), cfg.Restaurant)
	assert.Equal(t, "mesaya.reservations", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Security.StaffLoginEnabled())
	assert.Equal(t, 12*time.Hour, cfg.Security.JWTTTL)
	assert.Equal(t, 2*time.Hour, cfg.Sessions.IdleTTL)
	assert.NotEmpty(t, cfg.InstanceID)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("RESTAURANT_NAME", "Casa Mesa")
	t.Setenv("TOTAL_SEATS", "24")
	t.Setenv("OPEN_TIME", "17:00")
	t.Setenv("CLOSE_TIME", "22:00")
	t.Setenv("TURN_MINUTES", "120")
	t.Setenv("DAYS_OPEN", "fri, saturday,FRI")
	t.Setenv("KAFKA_BROKER", "localhost:9092, ")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STAFF_USERNAME", "host")
	t.Setenv("STAFF_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("INSTANCE_ID", "node-a")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "Casa Mesa", cfg.Restaurant.Name)
	assert.Equal(t, 24, cfg.Restaurant.TotalSeats)
	assert.Equal(t, domain.Clock(17, 0), cfg.Restaurant.Schedule.Open)
	assert.Equal(t, domain.Clock(22, 0), cfg.Restaurant.Schedule.Close)
	assert.Equal(t, 120, cfg.Restaurant.Schedule.TurnMinutes)
	assert.Equal(t, []domain.DayOfWeek{domain.Friday, domain.Saturday}, cfg.Restaurant.Schedule.DaysOpen)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Security.StaffLoginEnabled())
	assert.Equal(t, "node-a", cfg.InstanceID)
}

func TestLoadPrefersKafkaBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("KAFKA_BROKER", "ignored:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad seats":        {"TOTAL_SEATS": "many"},
		"zero seats":       {"TOTAL_SEATS": "0"},
		"bad open":         {"OPEN_TIME": "25:00"},
		"inverted hours":   {"OPEN_TIME": "22:00", "CLOSE_TIME": "12:00"},
		"short turn":       {"SLOT_MINUTES": "30", "TURN_MINUTES": "15"},
		"bad ttl":          {"JWT_TTL": "forever"},
		"unknown driver":   {"STORAGE_DRIVER": "mongo"},
		"postgres w/o url": {"STORAGE_DRIVER": "postgres"},
		"staff w/o secret": {"STAFF_USERNAME": "host"},
		"unknown days":     {"DAYS_OPEN": "funday,holiday"},
		"one unknown day":  {"DAYS_OPEN": "MON,funday"},
		"no days":          {"DAYS_OPEN": " , "},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

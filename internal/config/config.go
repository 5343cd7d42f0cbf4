package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mesaYaBooking/internal/modules/reservations/domain"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	defaultPort         = "8000"
	defaultKafkaTopic   = "mesaya.reservations"
	defaultKafkaGroupID = "mesaya-booking"
	defaultJWTIssuer    = "mesaya-booking"
	defaultJWTTTL       = 12 * time.Hour
	defaultSessionTTL   = 2 * time.Hour
)

type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Restaurant domain.RestaurantConfig
	Storage    StorageConfig
	Kafka      KafkaConfig
	Security   SecurityConfig
	Sessions   SessionConfig
	InstanceID string
}

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type StorageConfig struct {
	Driver      string
	DatabaseURL string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Enabled reports whether reservation events should flow through Kafka.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type SecurityConfig struct {
	JWTSecret         string
	JWTIssuer         string
	JWTTTL            time.Duration
	StaffUsername     string
	StaffPasswordHash string
}

// StaffLoginEnabled reports whether staff credentials were provided.
func (s SecurityConfig) StaffLoginEnabled() bool {
	return s.JWTSecret != "" && s.StaffUsername != "" && s.StaffPasswordHash != ""
}

type SessionConfig struct {
	IdleTTL time.Duration
}

// Load reads the process environment. Call godotenv beforehand to honour .env files.
func Load() (*Config, error) {
	restaurant, err := loadRestaurant()
	if err != nil {
		return nil, err
	}

	jwtTTL, err := durationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := durationEnv("SESSION_IDLE_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{Port: stringEnv("PORT", defaultPort)},
		Logging: LoggingConfig{
			Directory: stringEnv("LOG_DIRECTORY", "./logs"),
			Level:     stringEnv("LOG_LEVEL", "info"),
			Format:    stringEnv("LOG_FORMAT", "text"),
		},
		Restaurant: restaurant,
		Storage: StorageConfig{
			Driver:      strings.ToLower(stringEnv("STORAGE_DRIVER", StorageMemory)),
			DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		},
		Kafka: KafkaConfig{
			Brokers: kafkaBrokers(),
			Topic:   stringEnv("KAFKA_TOPIC", defaultKafkaTopic),
			GroupID: stringEnv("KAFKA_GROUP_ID", defaultKafkaGroupID),
		},
		Security: SecurityConfig{
			JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
			JWTIssuer:         stringEnv("JWT_ISSUER", defaultJWTIssuer),
			JWTTTL:            jwtTTL,
			StaffUsername:     strings.TrimSpace(os.Getenv("STAFF_USERNAME")),
			StaffPasswordHash: strings.TrimSpace(os.Getenv("STAFF_PASSWORD_HASH")),
		},
		Sessions:   SessionConfig{IdleTTL: sessionTTL},
		InstanceID: stringEnv("INSTANCE_ID", uuid.NewString()),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that env parsing alone cannot catch.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver))
	}

	r := c.Restaurant
	if r.TotalSeats < 1 {
		errs = append(errs, fmt.Errorf("TOTAL_SEATS must be positive, got %d", r.TotalSeats))
	}
	s := r.Schedule
	if s.SlotMinutes < 1 {
		errs = append(errs, fmt.Errorf("SLOT_MINUTES must be positive, got %d", s.SlotMinutes))
	}
	if s.TurnMinutes < s.SlotMinutes {
		errs = append(errs, fmt.Errorf("TURN_MINUTES (%d) must be at least SLOT_MINUTES (%d)", s.TurnMinutes, s.SlotMinutes))
	}
	if !s.Open.Before(s.Close) {
		errs = append(errs, fmt.Errorf("OPEN_TIME %s must be before CLOSE_TIME %s", s.Open, s.Close))
	}
	if c.Security.StaffUsername != "" && c.Security.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when STAFF_USERNAME is set"))
	}
	return errors.Join(errs...)
}

func loadRestaurant() (domain.RestaurantConfig, error) {
	cfg := domain.DefaultRestaurantConfig()
	cfg.Name = stringEnv("RESTAURANT_NAME", cfg.Name)

	var err error
	if cfg.TotalSeats, err = intEnv("TOTAL_SEATS", cfg.TotalSeats); err != nil {
		return cfg, err
	}
	if cfg.Schedule.SlotMinutes, err = intEnv("SLOT_MINUTES", cfg.Schedule.SlotMinutes); err != nil {
		return cfg, err
	}
	if cfg.Schedule.TurnMinutes, err = intEnv("TURN_MINUTES", cfg.Schedule.TurnMinutes); err != nil {
		return cfg, err
	}
	if cfg.Schedule.Open, err = clockEnv("OPEN_TIME", cfg.Schedule.Open); err != nil {
		return cfg, err
	}
	if cfg.Schedule.Close, err = clockEnv("CLOSE_TIME", cfg.Schedule.Close); err != nil {
		return cfg, err
	}
	if raw := strings.TrimSpace(os.Getenv("DAYS_OPEN")); raw != "" {
		if cfg.Schedule.DaysOpen, err = daysOpenEnv(raw); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// daysOpenEnv parses a comma separated day list. Unknown names are an error rather than dropped,
// since an empty result would open the restaurant every day.
func daysOpenEnv(raw string) ([]domain.DayOfWeek, error) {
	var unknown []string
	values := splitList(raw)
	for _, v := range values {
		if len(domain.NormalizeDaysOpen([]string{v})) == 0 {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("DAYS_OPEN has unknown days: %s", strings.Join(unknown, ", "))
	}
	days := domain.NormalizeDaysOpen(values)
	if len(days) == 0 {
		return nil, errors.New("DAYS_OPEN lists no days")
	}
	return days, nil
}

func kafkaBrokers() []string {
	raw := os.Getenv("KAFKA_BROKERS")
	if strings.TrimSpace(raw) == "" {
		raw = os.Getenv("KAFKA_BROKER")
	}
	return splitList(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func clockEnv(key string, fallback domain.ClockTime) (domain.ClockTime, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := domain.ParseClockTime(raw)
	if err != nil {
		return domain.ClockTime{}, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

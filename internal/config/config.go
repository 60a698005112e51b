package config

import (
	"os"
	"strconv"
	"time"

	"athena/internal/cache"
	"athena/internal/database"
	"athena/internal/external"
	"athena/internal/messaging"
)

// Config holds the full application configuration.
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	Database     database.Config
	NATS         messaging.Config
	Redis        cache.Config
	RedisEnabled bool
	Notification external.NotificationConfig
	Payment      external.PaymentConfig

	Booking BookingConfig
	Sweeper SweeperConfig
}

// BookingConfig carries the pricing and validity-window knobs. The unit
// price is flat per ticket; the published tiered price table is not applied
// (known product inconsistency, kept as-is).
type BookingConfig struct {
	UnitPrice      int64
	ValidityWindow time.Duration
	CreateLockTTL  time.Duration
}

type SweeperConfig struct {
	Interval time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "athena"),
			Password:           getEnv("DB_PASSWORD", "athena123"),
			DBName:             getEnv("DB_NAME", "athena"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "athena"),
			ClientID:  getEnv("NATS_CLIENT_ID", "athena-api"),
		},

		Redis: cache.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RedisEnabled: getEnv("REDIS_ENABLED", "true") == "true",

		Notification: external.NotificationConfig{
			BaseURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8090"),
			Timeout: time.Duration(getEnvInt("NOTIFICATION_TIMEOUT_SEC", 10)) * time.Second,
		},

		Payment: external.PaymentConfig{
			BaseURL: getEnv("PAYMENT_APP_URL", "http://localhost:5000"),
			Timeout: time.Duration(getEnvInt("PAYMENT_TIMEOUT_SEC", 30)) * time.Second,
		},

		Booking: BookingConfig{
			UnitPrice:      int64(getEnvInt("TICKET_UNIT_PRICE", 500)),
			ValidityWindow: time.Duration(getEnvInt("BOOKING_VALIDITY_HOURS", 24)) * time.Hour,
			CreateLockTTL:  time.Duration(getEnvInt("CREATE_LOCK_TTL_SEC", 10)) * time.Second,
		},

		Sweeper: SweeperConfig{
			Interval: time.Duration(getEnvInt("SWEEP_INTERVAL_SEC", 60)) * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

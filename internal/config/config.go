package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration of the service.
type Config struct {
	ServiceName string
	Server      ServerConfig
	DB          DBConfig
	Log         LogConfig
	RabbitMQ    RabbitMQConfig
	Upload      UploadConfig
	Metrics     MetricsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DBConfig holds database configuration.
type DBConfig struct {
	Driver          string // "postgres" or "sqlite"
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SeedReference   bool
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// RabbitMQConfig holds broker configuration. An empty URL disables events.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

// UploadConfig holds image upload configuration.
type UploadConfig struct {
	Dir      string
	MaxBytes int
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Prefix string
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	// .env is optional; the environment always wins
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=lapak port=5432 sslmode=disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("SEED_REFERENCE_DATA", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("METRICS_PREFIX", "lapak")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := &Config{
		ServiceName: "lapak",
		Server: ServerConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Driver:          v.GetString("DATABASE_DRIVER"),
			DSN:             v.GetString("DATABASE_DSN"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
			SeedReference:   v.GetBool("SEED_REFERENCE_DATA"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		Upload: UploadConfig{
			Dir:      v.GetString("UPLOAD_DIR"),
			MaxBytes: v.GetInt("UPLOAD_MAX_BYTES"),
		},
		Metrics: MetricsConfig{
			Prefix: v.GetString("METRICS_PREFIX"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q, want postgres or sqlite", c.DB.Driver)
	}
	if strings.TrimSpace(c.Upload.Dir) == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	return nil
}

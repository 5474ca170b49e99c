package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	SiteName        string
	HTTPAddr        string
	ServeEnabled    bool
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Heat flux censoring interval, W/m².
	H0LowerBound float64
	H0UpperBound float64

	ChartsEnabled bool

	// Report publishing; disabled when no broker is configured.
	KafkaBrokers     []string
	KafkaReportTopic string
}

// KafkaEnabled reports whether reports should be published to Kafka.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is read first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	lower, err := parseFloat("H0_LOWER_BOUND", -200)
	if err != nil {
		return nil, err
	}
	upper, err := parseFloat("H0_UPPER_BOUND", 1600)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		SiteName:         sharedcfg.EnvOrDefault("SITE_NAME", "site"),
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ServeEnabled:     parseBool("SERVE_ENABLED", false),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		H0LowerBound:     lower,
		H0UpperBound:     upper,
		ChartsEnabled:    parseBool("CHARTS_ENABLED", true),
		KafkaBrokers:     brokers,
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "sonic-site-reports"),
	}

	if cfg.H0LowerBound >= cfg.H0UpperBound {
		return nil, errors.New("H0_LOWER_BOUND must be below H0_UPPER_BOUND")
	}
	if cfg.KafkaEnabled() && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseBool(key string, def bool) bool {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			return v
		}
	}
	return def
}

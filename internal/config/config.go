package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseDSN = "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:3000"

	minJWTSecretLen = 32
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	LogLevel    string

	RedisAddress  string
	RedisPassword string
	CacheTTL      time.Duration

	// smtp, kafka or log
	NotifyTransport string
	ReportRecipient string
	ReportTimezone  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	KafkaBrokers     []string
	KafkaNotifyTopic string
}

// Load reads the environment, after merging a local .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDatabaseDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		NotifyTransport: strings.ToLower(getEnv("NOTIFY_TRANSPORT", "smtp")),
		ReportRecipient: getEnv("REPORT_RECIPIENT", ""),
		ReportTimezone:  getEnv("REPORT_TIMEZONE", "Asia/Jerusalem"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),

		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaNotifyTopic: getEnv("KAFKA_NOTIFY_TOPIC", "stock-reports"),
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}
	return cfg
}

// Validate reports configuration that the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	} else if len(c.JWTSecret) < minJWTSecretLen {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.ReportRecipient == "" && c.NotifyTransport != "log" {
		errs = append(errs, errors.New("REPORT_RECIPIENT is not set"))
	}
	switch c.NotifyTransport {
	case "smtp":
		if c.SMTPUsername == "" || c.SMTPPassword == "" {
			errs = append(errs, errors.New("SMTP_USERNAME and SMTP_PASSWORD are required for the smtp transport"))
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka transport"))
		}
	case "log":
	default:
		errs = append(errs, errors.New("NOTIFY_TRANSPORT must be one of smtp, kafka, log"))
	}
	return errors.Join(errs...)
}

// Warnings lists defaults that are fine for development but not for production.
func (c *Config) Warnings() []string {
	var w []string
	if c.DatabaseDSN == defaultDatabaseDSN {
		w = append(w, "DATABASE_DSN uses the default value")
	}
	if c.CORSOrigins == defaultCORSOrigins {
		w = append(w, "CORS_ALLOWED_ORIGINS uses the default value")
	}
	if c.RedisAddress == "" {
		w = append(w, "REDIS_ADDRESS is not set, read cache disabled")
	}
	return w
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

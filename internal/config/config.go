package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds everything read from the environment at startup.
type Config struct {
	HTTPAddr string

	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTAccessSecret  string
	JWTRefreshSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	KafkaBrokers []string
	KafkaTopic   string

	// Calendar integration credentials, consumed by the frontend flow.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
}

// Load reads .env if present, then resolves the full configuration from the
// environment. Missing optional values fall back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, using system environment")
	}

	cfg := Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		MySQLDSN:           getEnv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/eventhub?charset=utf8mb4&parseTime=True"),
		RedisAddr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		JWTAccessSecret:    getEnv("JWT_ACCESS_SECRET", "dev-access-secret"),
		JWTRefreshSecret:   getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret"),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:           getEnv("SMTP_FROM", "EventHub <no-reply@example.com>"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "eventhub.domain-events"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if os.Getenv("JWT_ACCESS_SECRET") == "" {
		log.Warn().Msg("JWT_ACCESS_SECRET not set, using development default")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer env value, using fallback")
		return fallback
	}
	return n
}

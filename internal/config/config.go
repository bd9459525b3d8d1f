package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const devSecretFallback = "dev_secret_change_me"

const defaultSessionTTLHours = 30 * 24

type Config struct {
	Env        string
	ServerPort int
	LogLevel   string

	DatabaseURL string

	SessionSecret []byte
	SessionTTL    time.Duration

	// DevLogin enables the prof@test.com bootstrap account. Resolved once
	// here, never re-evaluated per request.
	DevLogin bool

	KafkaBrokers []string
	MailTopic    string

	// BaseURL is used to build signup links in invitation mail.
	BaseURL string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file found, using system environment: %v", err)
	}

	env := EnvDefault("APP_ENV", "development")

	// A zero or negative TTL would mint instantly-expired sessions.
	ttlHours := EnvIntDefault("SESSION_TTL_HOURS", defaultSessionTTLHours)
	if ttlHours <= 0 {
		ttlHours = defaultSessionTTLHours
	}

	cfg := &Config{
		Env:         env,
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    time.Duration(ttlHours) * time.Hour,

		DevLogin: env == "development" && EnvDefault("DEV_LOGIN", "true") == "true",

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		MailTopic:    EnvDefault("MAIL_TOPIC", "mail_events"),

		BaseURL: EnvDefault("BASE_URL", "http://localhost:8080"),
	}

	if len(cfg.SessionSecret) == 0 {
		if env != "development" {
			MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")
		}
		cfg.SessionSecret = []byte(devSecretFallback)
	}

	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment at startup.
type Config struct {
	Addr        string
	PostgresDSN string
	RedisAddr   string
	RedisDB     int

	JWTSecret string
	JWTTTL    time.Duration

	// PushProvider selects the offline push transport: "fcm", "telegram"
	// or "" to disable it.
	PushProvider     string
	FCMServerKey     string
	TelegramBotToken string

	NotificationRetentionDays int
}

// Load assembles a Config from the environment, filling defaults for
// everything that is not set.
func Load() Config {
	return Config{
		Addr:        getEnv("ADDR", ":8080"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=user password=password dbname=civicalert port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,

		PushProvider:     getEnv("PUSH_PROVIDER", ""),
		FCMServerKey:     getEnv("FCM_SERVER_KEY", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		NotificationRetentionDays: getEnvInt("NOTIFICATION_RETENTION_DAYS", 30),
	}
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
		return fallback
	}
	return n
}

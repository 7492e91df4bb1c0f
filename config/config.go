package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env           string
	HTTPAddr      string
	DBPath        string
	JWTSecret     string
	RemoteBaseURL string
	RemoteTimeout time.Duration
	SyncInterval  time.Duration
	SyncMaxRetry  int
	SyncBaseDelay time.Duration
}

func Load() Config {
	return Config{
		Env:           getEnv("APP_ENV", "development"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8090"),
		DBPath:        getEnv("POS_DB_PATH", "pos_orders.db"),
		JWTSecret:     getEnv("JWT_SECRET", "pos_terminal_dev_secret"),
		RemoteBaseURL: getEnv("REMOTE_API_URL", "http://localhost:8080/api"),
		RemoteTimeout: getEnvDuration("REMOTE_API_TIMEOUT", 15*time.Second),
		SyncInterval:  getEnvDuration("SYNC_INTERVAL", 15*time.Minute),
		SyncMaxRetry:  getEnvInt("SYNC_MAX_RETRIES", 3),
		SyncBaseDelay: getEnvDuration("SYNC_BASE_DELAY", 2*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

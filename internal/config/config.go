package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Server
	ServerPort string
	BaseURL    string

	// CORS
	CORSAllowedOrigin string

	// Rate Limit
	RateLimitGeneral int
	RateLimitBooking int

	// Grid（週グリッドのレイアウト定数）
	GridHourHeight float64
	GridFirstHour  int
	GridLastHour   int

	// Reminder
	ReminderInterval time.Duration
	ReminderLead     time.Duration

	// Cleanup（終了済みイベントの保持）
	CleanupInterval    time.Duration
	EventRetentionDays int
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:5173")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitBooking = getEnvInt("RATE_LIMIT_BOOKING", 20)
	cfg.GridHourHeight = getEnvFloat("GRID_HOUR_HEIGHT", 60)
	cfg.GridFirstHour = getEnvInt("GRID_FIRST_HOUR", 8)
	cfg.GridLastHour = getEnvInt("GRID_LAST_HOUR", 20)
	cfg.ReminderInterval = getEnvDuration("REMINDER_INTERVAL", 1*time.Minute)
	cfg.ReminderLead = getEnvDuration("REMINDER_LEAD", 30*time.Minute)
	cfg.CleanupInterval = getEnvDuration("CLEANUP_INTERVAL", 24*time.Hour)
	cfg.EventRetentionDays = getEnvInt("EVENT_RETENTION_DAYS", 180)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server
	HTTPAddr        string
	AuthKey         string
	AllowedFrontend string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// PDF renderer service
	RendererBaseURL string
	RendererTimeout time.Duration

	// Pollers
	HealthInterval   time.Duration
	ReminderInterval time.Duration
	ReminderLead     time.Duration

	// Telegram reminders (optional; empty token disables them)
	TelegramToken  string
	TelegramChatID int64

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		HTTPAddr:         ":8001",
		AuthKey:          "dev-secret-key",
		RendererBaseURL:  "http://localhost:9000",
		RendererTimeout:  30 * time.Second,
		HealthInterval:   10 * time.Second,
		ReminderInterval: 5 * time.Minute,
		ReminderLead:     1 * time.Hour,
		LogLevel:         "info",
		RedisDB:          0,
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}

	if key := os.Getenv("AUTH_KEY"); key != "" {
		cfg.AuthKey = key
	}

	cfg.AllowedFrontend = os.Getenv("ALLOWED_FRONTEND_URL")

	if baseURL := os.Getenv("RENDERER_BASE_URL"); baseURL != "" {
		cfg.RendererBaseURL = baseURL
	}

	if timeout := os.Getenv("RENDERER_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid RENDERER_TIMEOUT: %w", err)
		}
		cfg.RendererTimeout = d
	}

	if interval := os.Getenv("HEALTH_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid HEALTH_INTERVAL: %w", err)
		}
		cfg.HealthInterval = d
	}

	if interval := os.Getenv("REMINDER_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_INTERVAL: %w", err)
		}
		cfg.ReminderInterval = d
	}

	if lead := os.Getenv("REMINDER_LEAD"); lead != "" {
		d, err := time.ParseDuration(lead)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_LEAD: %w", err)
		}
		cfg.ReminderLead = d
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.AuthKey == "" {
		return fmt.Errorf("auth key is empty")
	}

	if c.HealthInterval < time.Second {
		return fmt.Errorf("health interval too small: %v", c.HealthInterval)
	}

	if c.ReminderInterval < time.Minute {
		return fmt.Errorf("reminder interval too small: %v", c.ReminderInterval)
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// ReminderEnabled reports whether Telegram reminders are configured.
func (c *Config) ReminderEnabled() bool {
	return c.TelegramToken != ""
}

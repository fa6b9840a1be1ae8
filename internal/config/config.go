package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv      string
	Port        string // authd listen port
	ImaginePort string // imagine listen port

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Sessions
	SessionSecret string
	SessionExpiry time.Duration

	// Phone OTP
	OTPSecret string // hashing secret, falls back to SessionSecret
	OTPTTL    time.Duration

	// SMS gateway (SMSLocal-compatible)
	SMSAPIKey     string
	SMSSender     string
	SMSRoute      string
	SMSTemplateID string
	SMSAPIURL     string

	// OAuth placeholders (routes report "not configured" until implemented)
	GoogleClientID     string
	GoogleClientSecret string
	AppleClientID      string
	AppleClientSecret  string

	// Downstream app users are redirected to after login
	ImagineURL string

	// Image generation upstream
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppEnv:      envString("APP_ENV", "development"),
		Port:        envString("PORT", "8000"),
		ImaginePort: envString("IMAGINE_PORT", "5000"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/dai.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		SessionSecret: envString("LOGIN_SECRET_KEY", "dev-secret-key"),
		SessionExpiry: envDuration("SESSION_EXPIRY", 168*time.Hour), // 7 days

		OTPSecret: envString("OTP_SECRET_KEY", ""),
		OTPTTL:    envSeconds("OTP_TTL_SECONDS", 300*time.Second),

		SMSAPIKey:     envString("SMSLOCAL_API_KEY", ""),
		SMSSender:     envString("SMSLOCAL_SENDER", ""),
		SMSRoute:      envString("SMSLOCAL_ROUTE", "2"),
		SMSTemplateID: envString("SMSLOCAL_TEMPLATE_ID", ""),
		SMSAPIURL:     envString("SMSLOCAL_API_URL", "https://app.smslocal.in/api/smsapi"),

		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),
		AppleClientID:      envString("APPLE_CLIENT_ID", ""),
		AppleClientSecret:  envString("APPLE_CLIENT_SECRET", ""),

		ImagineURL: envString("IMAGINE_URL", "https://imagine-2lsn.onrender.com"),

		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIModel:   envString("OPENAI_MODEL", "gpt-4.1-mini"),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// OTP hashing falls back to the session secret, matching the original deployment
	if cfg.OTPSecret == "" {
		cfg.OTPSecret = cfg.SessionSecret
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

// envSeconds parses an integer number of seconds (legacy env shape)
func envSeconds(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid seconds, using default", "key", key, "value", v, "default", def)
		return def
	}
	return time.Duration(n) * time.Second
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

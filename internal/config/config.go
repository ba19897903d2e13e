// Package config reads the DISPENSA_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/dispensa/internal/archive"
)

type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string
	Location  *time.Location

	Username      string
	Password      string
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool

	StrictUnits bool

	S3 archive.S3Config
}

// Load reads configuration from the environment. Unset keys take their
// defaults; malformed values are an error.
func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("DISPENSA_PORT", "8080"),
		DBPath:        getenv("DISPENSA_DB_PATH", "dispensa.db"),
		LogLevel:      getenv("DISPENSA_LOG_LEVEL", "info"),
		LogFormat:     getenv("DISPENSA_LOG_FORMAT", "text"),
		Username:      getenv("DISPENSA_USERNAME", "Arena"),
		Password:      getenv("DISPENSA_PASSWORD", "arena123"),
		PasswordHash:  strings.TrimSpace(os.Getenv("DISPENSA_PASSWORD_HASH")),
		SessionSecret: os.Getenv("DISPENSA_SESSION_SECRET"),
		S3: archive.S3Config{
			Endpoint:  os.Getenv("DISPENSA_S3_ENDPOINT"),
			Region:    getenv("DISPENSA_S3_REGION", "auto"),
			Bucket:    os.Getenv("DISPENSA_S3_BUCKET"),
			AccessKey: os.Getenv("DISPENSA_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("DISPENSA_S3_SECRET_KEY"),
		},
	}

	var err error
	tz := getenv("DISPENSA_TIMEZONE", "Europe/Rome")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return cfg, fmt.Errorf("DISPENSA_TIMEZONE: %w", err)
	}
	if cfg.SessionTTL, err = getenvDuration("DISPENSA_SESSION_TTL", 720*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.SecureCookie, err = getenvBool("DISPENSA_SECURE_COOKIE", false); err != nil {
		return cfg, err
	}
	if cfg.StrictUnits, err = getenvBool("DISPENSA_STRICT_UNITS", false); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fallback, fmt.Errorf("%s: must be positive", key)
	}
	return d, nil
}

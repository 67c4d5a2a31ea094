package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings are process-level options read from the environment
type Settings struct {
	Format         string
	OutputDir      string
	LogLevel       string
	LogFormat      string
	Addr           string
	AllowedOrigins []string
	Parallelism    int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		Format:         "console",
		OutputDir:      ".",
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":8080",
		AllowedOrigins: []string{"*"},
		Parallelism:    4,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
	}
}

// LoadSettings loads a .env file if present and applies PROJECTOR_*
// environment overrides on top of the defaults.
func LoadSettings(envFiles ...string) (Settings, error) {
	s := DefaultSettings()

	if len(envFiles) == 0 {
		// .env is optional
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return s, fmt.Errorf("failed to load env files: %w", err)
	}

	applyEnvOverrides(&s)
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func applyEnvOverrides(s *Settings) {
	setStr(&s.Format, "PROJECTOR_FORMAT")
	setStr(&s.OutputDir, "PROJECTOR_OUTPUT_DIR")
	setStr(&s.LogLevel, "PROJECTOR_LOG_LEVEL")
	setStr(&s.LogFormat, "PROJECTOR_LOG_FORMAT")
	setStr(&s.Addr, "PROJECTOR_ADDR")
	setStringSlice(&s.AllowedOrigins, "PROJECTOR_ALLOWED_ORIGINS")
	setInt(&s.Parallelism, "PROJECTOR_PARALLELISM")
	setDuration(&s.ReadTimeout, "PROJECTOR_READ_TIMEOUT")
	setDuration(&s.WriteTimeout, "PROJECTOR_WRITE_TIMEOUT")
}

// Validate checks setting values
func (s Settings) Validate() error {
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("PROJECTOR_LOG_LEVEL must be debug, info, warn or error, got %q", s.LogLevel)
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("PROJECTOR_LOG_FORMAT must be text or json, got %q", s.LogFormat)
	}
	if s.Parallelism < 1 {
		return fmt.Errorf("PROJECTOR_PARALLELISM must be >= 1, got %d", s.Parallelism)
	}
	return nil
}

// Typed env-var helpers. Each only mutates the target when the variable is
// present and non-empty.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}

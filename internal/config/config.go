package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"uncertainty-gin/internal/i18n"
)

// Config holds the configuration values for the application.
type Config struct {
	ListenPort      string
	GinMode         string
	DefaultLanguage string
	AllowOrigins    []string
	Sessions        int // sessions shown on the form
	Repeats         int // repeat inputs per session on the form
	MaxSessions     int // upper bound for API requests
	LogLevel        string
}

// LoadConfig loads configuration from environment variables or uses default values.
// The given env files (".env" when none are given) are loaded first; a missing file is not an error.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	listenPort := os.Getenv("LISTEN_PORT")
	if listenPort == "" {
		listenPort = "8080"
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = "release"
	}
	switch ginMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", ginMode)
	}

	defaultLanguage := strings.ToLower(os.Getenv("DEFAULT_LANGUAGE"))
	if defaultLanguage == "" {
		defaultLanguage = i18n.Languages[0].Code
	}
	if !supportedLanguage(defaultLanguage) {
		return nil, fmt.Errorf("invalid DEFAULT_LANGUAGE %q", defaultLanguage)
	}

	allowOrigins := []string{"*"}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		allowOrigins = allowOrigins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowOrigins = append(allowOrigins, o)
			}
		}
	}

	sessions, err := positiveInt("SESSIONS", 3)
	if err != nil {
		return nil, err
	}
	repeats, err := positiveInt("REPEATS", 5)
	if err != nil {
		return nil, err
	}
	maxSessions, err := positiveInt("MAX_SESSIONS", 20)
	if err != nil {
		return nil, err
	}
	if maxSessions < sessions {
		return nil, fmt.Errorf("MAX_SESSIONS (%d) is lower than SESSIONS (%d)", maxSessions, sessions)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	if _, err := zapcore.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &Config{
		ListenPort:      listenPort,
		GinMode:         ginMode,
		DefaultLanguage: defaultLanguage,
		AllowOrigins:    allowOrigins,
		Sessions:        sessions,
		Repeats:         repeats,
		MaxSessions:     maxSessions,
		LogLevel:        logLevel,
	}, nil
}

func positiveInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func supportedLanguage(code string) bool {
	for _, l := range i18n.Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port string
	Env  string

	LivenessTimeout time.Duration
	DefaultGame     string
	StatsListLimit  int

	// Store selects the lobby backend: "memory" or "postgres".
	Store       string
	DatabaseURL string

	// RedisAddr empty disables announcement publishing.
	RedisAddr     string
	RedisDB       int
	AnnounceQueue string
	AnnounceKey   string

	BannedWordsPath string
	AliasesPath     string
	CurrentVersion  string

	AllowedOrigins []string
	LogLevel       logrus.Level
}

// Load reads the configuration. Malformed optional values fall back to their
// defaults; a malformed liveness timeout is an error.
func Load() (*Config, error) {
	c := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		DefaultGame:     getEnv("DEFAULT_GAME", "mbaacc"),
		StatsListLimit:  getEnvInt("STATS_LIST_LIMIT", 8),
		Store:           strings.ToLower(getEnv("STORE", "memory")),
		DatabaseURL:     databaseURL(),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		AnnounceQueue:   getEnv("ANNOUNCE_QUEUE", "lobby_announcements"),
		AnnounceKey:     os.Getenv("ANNOUNCE_KEY"),
		BannedWordsPath: getEnv("BANNED_WORDS_PATH", "bad_words.json"),
		AliasesPath:     getEnv("ALIASES_PATH", "aliases.json"),
		CurrentVersion:  os.Getenv("CURRENT_VERSION"),
		LogLevel:        logrus.InfoLevel,
	}

	timeout, err := time.ParseDuration(getEnv("LIVENESS_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse LIVENESS_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("LIVENESS_TIMEOUT must be positive, got %s", timeout)
	}
	c.LivenessTimeout = timeout

	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		c.LogLevel = lvl
	}

	switch c.Store {
	case "memory", "postgres":
	default:
		return nil, fmt.Errorf("unknown STORE %q (want memory or postgres)", c.Store)
	}

	// allow only origins specified in dotenv file if we are in production mode
	if c.Production() {
		for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	} else {
		c.AllowedOrigins = []string{"https://*", "http://*"}
	}
	return c, nil
}

// Production reports whether APP_ENV names a production deployment.
func (c *Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the PG_* variables.
func databaseURL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		getEnv("PG_HOST", "localhost"),
		getEnv("PG_PORT", "5432"),
		os.Getenv("PG_DATABASE"),
	)
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

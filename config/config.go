package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	RealtimeLocal    = "local"
	RealtimePostgres = "postgres"
)

type Config struct {
	Port    int
	GinMode string

	// DatabaseURL wins over the split DB_* settings when set.
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	DBTimeZone  string
	DBDebug     bool

	JWTSecret string

	RealtimeMode         string
	WSInsecureSkipVerify bool

	MongoURI      string
	MongoDatabase string

	LogLevel  string
	LogFormat string

	// InMemory replaces Postgres with the in-process store.
	InMemory bool
}

// Load reads envFile (if it exists) and then the environment. A missing
// .env file is not an error; variables already set are not overridden.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := Config{
		Port:                 8080,
		GinMode:              os.Getenv("GIN_MODE"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DBHost:               os.Getenv("DB_HOST"),
		DBUser:               os.Getenv("DB_USERNAME"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBPort:               getenv("DB_PORT", "5432"),
		DBSSLMode:            getenv("DB_SSLMODE", "disable"),
		DBTimeZone:           getenv("DB_TIMEZONE", "UTC"),
		DBDebug:              os.Getenv("DB_DEBUG") == "true",
		JWTSecret:            os.Getenv("JWT_SECRET_KEY"),
		RealtimeMode:         strings.ToLower(getenv("REALTIME_MODE", RealtimeLocal)),
		WSInsecureSkipVerify: os.Getenv("WS_INSECURE_SKIP_VERIFY") == "true",
		MongoURI:             os.Getenv("MONGO_URI"),
		MongoDatabase:        getenv("MONGO_DATABASE", "roomshare"),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		LogFormat:            getenv("LOG_FORMAT", "text"),
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("PORT: %w", err)
		}
		cfg.Port = p
	}
	return cfg, nil
}

// Validate reports the first missing or inconsistent setting.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY environment variable is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.RealtimeMode {
	case RealtimeLocal:
	case RealtimePostgres:
		if c.InMemory {
			return errors.New("REALTIME_MODE=postgres needs a database, not --in-memory")
		}
	default:
		return fmt.Errorf("REALTIME_MODE must be %q or %q, got %q", RealtimeLocal, RealtimePostgres, c.RealtimeMode)
	}
	if !c.InMemory && c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "") {
		return errors.New("DATABASE_URL or DB_HOST and DB_NAME are required")
	}
	return nil
}

// DSN is the Postgres connection string, keyword/value form unless
// DATABASE_URL is set. pgx accepts both.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone,
	)
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

const (
	// DriverSQLite is the database/sql driver name for SQLite.
	DriverSQLite = "sqlite3"
	// DriverMySQL is the database/sql driver name for MySQL.
	DriverMySQL = "mysql"

	// CheckModeApproximate reuses the previous result while the space count is unchanged.
	CheckModeApproximate = "approximate"
	// CheckModeExact recomputes misspellings on every change.
	CheckModeExact = "exact"
)

// Config holds all configuration for the application.
type Config struct {
	DBDriver     string
	DBDSN        string
	WordTable    string
	WordColumn   string
	PageSize     int
	StoreTimeout time.Duration
	SessionTTL   time.Duration
	CachePath    string
	Locale       language.Tag
	CheckMode    string
	APIPort      string
	LogLevel     slog.Level
	LogFormat    string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent directory, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBDSN:      getEnv("DB_DSN", ""),
		WordTable:  getEnv("WORD_TABLE", "words"),
		WordColumn: getEnv("WORD_COLUMN", "WordText"),
		CachePath:  getEnv("CACHE_PATH", "./data/words_cache.json"),
		CheckMode:  strings.ToLower(getEnv("CHECK_MODE", CheckModeApproximate)),
		APIPort:    getEnv("API_PORT", "9000"),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBDSN == "" {
			cfg.DBDSN = "./data/illumicheck.db"
		}
		if err := ensureDir(cfg.DBDSN); err != nil {
			return nil, err
		}
	case DriverMySQL:
		if cfg.DBDSN == "" {
			dsn, err := mysqlDSN()
			if err != nil {
				return nil, err
			}
			cfg.DBDSN = dsn
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverMySQL, cfg.DBDriver)
	}

	pageSize, err := strconv.Atoi(getEnv("PAGE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_SIZE must be a valid integer: %w", err)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be greater than 0")
	}
	cfg.PageSize = pageSize

	timeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("STORE_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("STORE_TIMEOUT must be greater than 0")
	}
	cfg.StoreTimeout = timeout

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a valid duration: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be greater than 0")
	}
	cfg.SessionTTL = ttl

	locale, err := language.Parse(getEnv("LOCALE", "und"))
	if err != nil {
		return nil, fmt.Errorf("LOCALE must be a valid BCP 47 tag: %w", err)
	}
	cfg.Locale = locale

	if cfg.CheckMode != CheckModeApproximate && cfg.CheckMode != CheckModeExact {
		return nil, fmt.Errorf("CHECK_MODE must be %q or %q, got %q", CheckModeApproximate, CheckModeExact, cfg.CheckMode)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := ensureDir(cfg.CachePath); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mysqlDSN builds a MySQL DSN from the DB_HOST, DB_USER, DB_PASSWORD, DB_NAME and DB_CHARSET variables.
func mysqlDSN() (string, error) {
	name := getEnv("DB_NAME", "")
	if name == "" {
		return "", fmt.Errorf("DB_NAME is required when DB_DRIVER is mysql and DB_DSN is empty")
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = getEnv("DB_HOST", "localhost:3306")
	mc.User = getEnv("DB_USER", "root")
	mc.Passwd = getEnv("DB_PASSWORD", "")
	mc.DBName = name
	mc.Params = map[string]string{"charset": getEnv("DB_CHARSET", "utf8mb4")}
	return mc.FormatDSN(), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"DB_DRIVER", "DB_DSN", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_CHARSET",
	"WORD_TABLE", "WORD_COLUMN", "PAGE_SIZE", "STORE_TIMEOUT", "SESSION_TTL", "CACHE_PATH",
	"LOCALE", "CHECK_MODE", "API_PORT", "LOG_LEVEL", "LOG_FORMAT",
}

// isolateEnv clears every config variable and moves into an empty directory
// so no .env file is picked up. Everything is restored on cleanup.
func isolateEnv(t *testing.T) {
	t.Helper()

	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}

	originalWd, _ := os.Getwd()
	_ = os.Chdir(t.TempDir())

	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "default values",
			setupEnv: func(t *testing.T) {},
			wantErr:  false,
			checkConfig: func(cfg *Config) bool {
				return cfg.DBDriver == DriverSQLite &&
					cfg.DBDSN == "./data/illumicheck.db" &&
					cfg.WordTable == "words" &&
					cfg.WordColumn == "WordText" &&
					cfg.PageSize == 1000 &&
					cfg.StoreTimeout == 30*time.Second &&
					cfg.SessionTTL == 30*time.Minute &&
					cfg.CachePath == "./data/words_cache.json" &&
					cfg.Locale == language.Und &&
					cfg.CheckMode == CheckModeApproximate &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				dir := t.TempDir()
				setEnv("DB_DSN", filepath.Join(dir, "db", "words.db"))
				setEnv("WORD_TABLE", "TDK")
				setEnv("WORD_COLUMN", "turkishwords")
				setEnv("PAGE_SIZE", "250")
				setEnv("STORE_TIMEOUT", "5s")
				setEnv("SESSION_TTL", "90s")
				setEnv("CACHE_PATH", filepath.Join(dir, "cache", "words.json"))
				setEnv("LOCALE", "tr")
				setEnv("CHECK_MODE", "EXACT")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "json")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return filepath.Base(cfg.DBDSN) == "words.db" &&
					cfg.WordTable == "TDK" &&
					cfg.WordColumn == "turkishwords" &&
					cfg.PageSize == 250 &&
					cfg.StoreTimeout == 5*time.Second &&
					cfg.SessionTTL == 90*time.Second &&
					cfg.Locale == language.Turkish &&
					cfg.CheckMode == CheckModeExact &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json"
			},
		},
		{
			name: "mysql DSN built from parts",
			setupEnv: func(t *testing.T) {
				setEnv("DB_DRIVER", "mysql")
				setEnv("DB_HOST", "db:3306")
				setEnv("DB_USER", "speller")
				setEnv("DB_PASSWORD", "secret")
				setEnv("DB_NAME", "spellchecker")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.DBDriver == DriverMySQL &&
					strings.HasPrefix(cfg.DBDSN, "speller:secret@tcp(db:3306)/spellchecker") &&
					strings.Contains(cfg.DBDSN, "charset=utf8mb4")
			},
		},
		{
			name: "mysql explicit DSN wins",
			setupEnv: func(t *testing.T) {
				setEnv("DB_DRIVER", "mysql")
				setEnv("DB_DSN", "u:p@tcp(h:1)/d")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.DBDSN == "u:p@tcp(h:1)/d"
			},
		},
		{
			name: "mysql without DB_NAME",
			setupEnv: func(t *testing.T) {
				setEnv("DB_DRIVER", "mysql")
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			setupEnv: func(t *testing.T) {
				setEnv("DB_DRIVER", "postgres")
			},
			wantErr: true,
		},
		{
			name: "invalid PAGE_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("PAGE_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero PAGE_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("PAGE_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "invalid STORE_TIMEOUT",
			setupEnv: func(t *testing.T) {
				setEnv("STORE_TIMEOUT", "soon")
			},
			wantErr: true,
		},
		{
			name: "invalid SESSION_TTL",
			setupEnv: func(t *testing.T) {
				setEnv("SESSION_TTL", "-1m")
			},
			wantErr: true,
		},
		{
			name: "invalid LOCALE",
			setupEnv: func(t *testing.T) {
				setEnv("LOCALE", "not a tag!")
			},
			wantErr: true,
		},
		{
			name: "invalid CHECK_MODE",
			setupEnv: func(t *testing.T) {
				setEnv("CHECK_MODE", "fuzzy")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolateEnv(t)

	if err := os.WriteFile(".env", []byte("WORD_TABLE=from_dotenv\nPAGE_SIZE=42\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	setEnv("PAGE_SIZE", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.WordTable != "from_dotenv" {
		t.Errorf("Load() WordTable = %q, want from_dotenv", cfg.WordTable)
	}
	// Environment takes precedence over .env
	if cfg.PageSize != 7 {
		t.Errorf("Load() PageSize = %d, want 7", cfg.PageSize)
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolateEnv(t)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "db", "words.db")
	cachePath := filepath.Join(tmpDir, "cache", "words.json")
	setEnv("DB_DSN", dbPath)
	setEnv("CACHE_PATH", cachePath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, p := range []string{dbPath, cachePath} {
		if _, err := os.Stat(filepath.Dir(p)); os.IsNotExist(err) {
			t.Errorf("Load() should create directory for %s: %v", p, err)
		}
	}

	if cfg.DBDSN != dbPath {
		t.Errorf("Load() DBDSN = %v, want %v", cfg.DBDSN, dbPath)
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

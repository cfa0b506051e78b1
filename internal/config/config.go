package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrEmptyEnvironmentVariable = errors.New("empty environment variable")
	ErrInvalidOption            = errors.New("invalid configuration option")
)

// Store drivers
const (
	StoreDriverSupabase = "supabase"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Call page modes
const (
	CallModeWidget   = "widget"
	CallModeRedirect = "redirect"
	CallModeJSON     = "json"
)

// Context provider and transcript store backends
const (
	ContextProviderPlaceholder = "placeholder"
	ContextProviderHistory     = "history"

	TranscriptStoreLog   = "log"
	TranscriptStoreStore = "store"
)

// Config holds all application configuration. It is built once by Load and
// never mutated afterwards.
type Config struct {
	Vendor   VendorConfig
	Chat     ChatConfig
	Store    StoreConfig
	Call     CallConfig
	Memory   MemoryConfig
	Reminder ReminderConfig
	Server   ServerConfig
	Location *time.Location
}

// VendorConfig holds the voice vendor (ElevenLabs) settings
type VendorConfig struct {
	APIKey        string
	AgentID       string
	CallURL       string
	BaseURL       string
	WebhookSecret string
	Timeout       time.Duration
}

// ChatConfig holds Slack settings. Either transport may be empty.
type ChatConfig struct {
	BotToken   string
	WebhookURL string
	APIURL     string
	Timeout    time.Duration
}

// StoreConfig selects and configures the session backend
type StoreConfig struct {
	Driver      string
	SupabaseURL string
	SupabaseKey string
	DatabaseURL string
	SQLitePath  string
	AutoMigrate bool
}

// CallConfig holds call page settings
type CallConfig struct {
	Mode          string
	LinkSecret    string
	LinkTTL       time.Duration
	PublicBaseURL string
}

// MemoryConfig selects the context provider and transcript store
type MemoryConfig struct {
	ContextProvider string
	TranscriptStore string
	LeadQuestion    string
	HistoryDepth    int
}

// ReminderConfig holds the daily reminder schedule
type ReminderConfig struct {
	Enabled bool
	Cron    string
	UserIDs []string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Production     bool
	AllowedOrigins []string
}

// Load reads and validates the environment
func Load() (*Config, error) {
	production := os.Getenv("GO_ENV") == "production"
	if !production {
		if err := godotenv.Load(getEnvWithDefault("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg := &Config{}
	var err error

	// Vendor configuration
	cfg.Vendor.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	cfg.Vendor.AgentID = os.Getenv("ELEVENLABS_AGENT_ID")
	cfg.Vendor.CallURL = os.Getenv("ELEVENLABS_CALL_URL")
	cfg.Vendor.BaseURL = strings.TrimSuffix(getEnvWithDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io/v1"), "/")
	cfg.Vendor.WebhookSecret = os.Getenv("ELEVENLABS_WEBHOOK_SECRET")
	if cfg.Vendor.Timeout, err = parseDuration("ELEVENLABS_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	// Chat configuration
	cfg.Chat.BotToken = os.Getenv("SLACK_BOT_TOKEN")
	cfg.Chat.WebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	cfg.Chat.APIURL = getEnvWithDefault("SLACK_API_URL", "https://slack.com/api/")
	if !strings.HasSuffix(cfg.Chat.APIURL, "/") {
		cfg.Chat.APIURL += "/"
	}
	if cfg.Chat.Timeout, err = parseDuration("SLACK_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	// Store configuration
	cfg.Store.Driver = getEnvWithDefault("STORE_DRIVER", StoreDriverSupabase)
	switch cfg.Store.Driver {
	case StoreDriverSupabase:
		if cfg.Store.SupabaseURL, err = requireEnv("SUPABASE_URL"); err != nil {
			return nil, err
		}
		cfg.Store.SupabaseURL = strings.TrimSuffix(cfg.Store.SupabaseURL, "/")
		if cfg.Store.SupabaseKey, err = requireEnv("SUPABASE_ANON_KEY"); err != nil {
			return nil, err
		}
	case StoreDriverPostgres:
		if cfg.Store.DatabaseURL, err = requireEnv("DATABASE_URL"); err != nil {
			return nil, err
		}
	case StoreDriverSQLite:
		cfg.Store.SQLitePath = getEnvWithDefault("SQLITE_PATH", "standup.db")
	default:
		return nil, fmt.Errorf("STORE_DRIVER %q: %w", cfg.Store.Driver, ErrInvalidOption)
	}
	if cfg.Store.AutoMigrate, err = parseBool("STORE_AUTO_MIGRATE", "true"); err != nil {
		return nil, err
	}

	// Call configuration
	cfg.Call.Mode = getEnvWithDefault("CALL_MODE", CallModeWidget)
	switch cfg.Call.Mode {
	case CallModeWidget, CallModeRedirect, CallModeJSON:
	default:
		return nil, fmt.Errorf("CALL_MODE %q: %w", cfg.Call.Mode, ErrInvalidOption)
	}
	cfg.Call.LinkSecret = os.Getenv("CALL_LINK_SECRET")
	if cfg.Call.LinkTTL, err = parseDuration("CALL_LINK_TTL", "12h"); err != nil {
		return nil, err
	}
	cfg.Call.PublicBaseURL = strings.TrimSuffix(getEnvWithDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/")

	// Memory configuration
	cfg.Memory.ContextProvider = getEnvWithDefault("CONTEXT_PROVIDER", ContextProviderPlaceholder)
	if cfg.Memory.ContextProvider != ContextProviderPlaceholder && cfg.Memory.ContextProvider != ContextProviderHistory {
		return nil, fmt.Errorf("CONTEXT_PROVIDER %q: %w", cfg.Memory.ContextProvider, ErrInvalidOption)
	}
	cfg.Memory.TranscriptStore = getEnvWithDefault("TRANSCRIPT_STORE", TranscriptStoreLog)
	if cfg.Memory.TranscriptStore != TranscriptStoreLog && cfg.Memory.TranscriptStore != TranscriptStoreStore {
		return nil, fmt.Errorf("TRANSCRIPT_STORE %q: %w", cfg.Memory.TranscriptStore, ErrInvalidOption)
	}
	cfg.Memory.LeadQuestion = os.Getenv("LEAD_QUESTION")
	if cfg.Memory.HistoryDepth, err = strconv.Atoi(getEnvWithDefault("HISTORY_DEPTH", "3")); err != nil {
		return nil, fmt.Errorf("failed to parse HISTORY_DEPTH: %w", err)
	}

	// Reminder configuration
	if cfg.Reminder.Enabled, err = parseBool("REMINDER_ENABLED", "false"); err != nil {
		return nil, err
	}
	cfg.Reminder.Cron = getEnvWithDefault("REMINDER_CRON", "0 9 * * 1-5")
	cfg.Reminder.UserIDs = splitList(os.Getenv("REMINDER_USER_IDS"))

	// Time zone used for session dates and the reminder schedule
	cfg.Location, err = time.LoadLocation(getEnvWithDefault("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("failed to load TIMEZONE: %w", err)
	}

	// Server configuration
	cfg.Server.Production = production
	if cfg.Server.Port, err = strconv.Atoi(getEnvWithDefault("SERVER_PORT", "8080")); err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.AllowedOrigins = splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"))

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return d, nil
}

func parseBool(key, defaultValue string) (bool, error) {
	b, err := strconv.ParseBool(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return b, nil
}

// splitList splits a comma separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fichaje/internal/timeutil"
)

// MemoryStore as the store filename keeps every record in RAM
const MemoryStore = ":memory:"

// Store backends
const (
	BackendBuntDB = "buntdb"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the fichaje bot and CLI
type Config struct {
	Bot         BotConfig
	Store       StoreConfig
	Schedule    ScheduleConfig
	Application ApplicationConfig
}

// BotConfig holds the chat transport configuration
type BotConfig struct {
	Token       string        `env:"FICHAJE_BOT_TOKEN"`
	PollTimeout time.Duration `env:"FICHAJE_BOT_POLL_TIMEOUT"`
	Workers     int           `env:"FICHAJE_BOT_WORKERS"`
	Debug       bool          `env:"FICHAJE_BOT_DEBUG"`
}

// StoreConfig holds document store configuration
type StoreConfig struct {
	Backend        string        `env:"FICHAJE_STORE_BACKEND"`
	Dir            string        `env:"FICHAJE_STORE_DIR"`
	Filename       string        `env:"FICHAJE_STORE_FILENAME"`
	QueryTimeout   time.Duration `env:"FICHAJE_STORE_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"FICHAJE_STORE_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"FICHAJE_STORE_DIR_PERMISSIONS"`
}

// ScheduleConfig holds the working timetable
type ScheduleConfig struct {
	Timezone       string        `env:"FICHAJE_TIMEZONE"`
	ReducedMonths  []int         `env:"FICHAJE_REDUCED_MONTHS"`
	StandardHours  time.Duration `env:"FICHAJE_STANDARD_HOURS"`
	ReducedHours   time.Duration `env:"FICHAJE_REDUCED_HOURS"`
	PauseAllowance time.Duration `env:"FICHAJE_PAUSE_ALLOWANCE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `env:"FICHAJE_APP_TIMEOUT"`
	Verbose   bool          `env:"FICHAJE_APP_VERBOSE"`
	LogFormat string        `env:"FICHAJE_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultStoreDir := filepath.Join(homeDir, ".fichaje")

	policy := timeutil.DefaultPolicy()
	return &Config{
		Bot: BotConfig{
			PollTimeout: 60 * time.Second,
			Workers:     4,
		},
		Store: StoreConfig{
			Backend:        BackendBuntDB,
			Dir:            defaultStoreDir,
			Filename:       "fichaje.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Schedule: ScheduleConfig{
			ReducedMonths:  monthsToInts(policy.ReducedMonths),
			StandardHours:  policy.StandardWorkDuration,
			ReducedHours:   policy.ReducedWorkDuration,
			PauseAllowance: policy.PauseAllowance,
		},
		Application: ApplicationConfig{
			Timeout:   30 * time.Second,
			LogFormat: "json",
		},
	}
}

// GetStorePath returns the full path to the store file
func (c *Config) GetStorePath() string {
	if c.Store.Filename == MemoryStore {
		return MemoryStore
	}
	return filepath.Join(c.Store.Dir, c.Store.Filename)
}

// GetLocation resolves the configured timezone. Empty means the host's local zone.
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Schedule.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Schedule.Timezone)
}

// Policy returns the schedule policy the calculator applies
func (c *Config) Policy() timeutil.Policy {
	months := make([]time.Month, 0, len(c.Schedule.ReducedMonths))
	for _, m := range c.Schedule.ReducedMonths {
		months = append(months, time.Month(m))
	}
	return timeutil.Policy{
		ReducedMonths:        months,
		StandardWorkDuration: c.Schedule.StandardHours,
		ReducedWorkDuration:  c.Schedule.ReducedHours,
		PauseAllowance:       c.Schedule.PauseAllowance,
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Bot configuration; BOT_TOKEN is accepted as a fallback
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		c.Bot.Token = token
	}
	if token := os.Getenv("FICHAJE_BOT_TOKEN"); token != "" {
		c.Bot.Token = token
	}
	if timeout := os.Getenv("FICHAJE_BOT_POLL_TIMEOUT"); timeout != "" {
		c.Bot.PollTimeout = ParseDurationWithFallback(timeout, c.Bot.PollTimeout)
	}
	if workers := os.Getenv("FICHAJE_BOT_WORKERS"); workers != "" {
		c.Bot.Workers = ParseIntWithFallback(workers, c.Bot.Workers)
	}
	if debug := os.Getenv("FICHAJE_BOT_DEBUG"); debug != "" {
		c.Bot.Debug = ParseBoolWithFallback(debug, c.Bot.Debug)
	}

	// Store configuration
	if backend := os.Getenv("FICHAJE_STORE_BACKEND"); backend != "" {
		c.Store.Backend = backend
	}
	if dir := os.Getenv("FICHAJE_STORE_DIR"); dir != "" {
		c.Store.Dir = dir
	}
	if filename := os.Getenv("FICHAJE_STORE_FILENAME"); filename != "" {
		c.Store.Filename = filename
	}
	if timeout := os.Getenv("FICHAJE_STORE_QUERY_TIMEOUT"); timeout != "" {
		c.Store.QueryTimeout = ParseDurationWithFallback(timeout, c.Store.QueryTimeout)
	}
	if timeout := os.Getenv("FICHAJE_STORE_WRITE_TIMEOUT"); timeout != "" {
		c.Store.WriteTimeout = ParseDurationWithFallback(timeout, c.Store.WriteTimeout)
	}
	if perms := os.Getenv("FICHAJE_STORE_DIR_PERMISSIONS"); perms != "" {
		c.Store.DirPermissions = ParseUint32WithFallback(perms, 8, c.Store.DirPermissions)
	}

	// Schedule configuration
	if tz := os.Getenv("FICHAJE_TIMEZONE"); tz != "" {
		c.Schedule.Timezone = tz
	}
	if months := os.Getenv("FICHAJE_REDUCED_MONTHS"); months != "" {
		if parsed, err := ParseMonths(months); err == nil {
			c.Schedule.ReducedMonths = parsed
		}
	}
	if hours := os.Getenv("FICHAJE_STANDARD_HOURS"); hours != "" {
		c.Schedule.StandardHours = ParseDurationWithFallback(hours, c.Schedule.StandardHours)
	}
	if hours := os.Getenv("FICHAJE_REDUCED_HOURS"); hours != "" {
		c.Schedule.ReducedHours = ParseDurationWithFallback(hours, c.Schedule.ReducedHours)
	}
	if allowance := os.Getenv("FICHAJE_PAUSE_ALLOWANCE"); allowance != "" {
		c.Schedule.PauseAllowance = ParseDurationWithFallback(allowance, c.Schedule.PauseAllowance)
	}

	// Application configuration
	if timeout := os.Getenv("FICHAJE_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("FICHAJE_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if format := os.Getenv("FICHAJE_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate bot configuration
	if c.Bot.PollTimeout < 0 {
		return &ConfigError{Field: "bot.poll_timeout", Message: "poll timeout cannot be negative"}
	}
	if c.Bot.Workers < 1 {
		return &ConfigError{Field: "bot.workers", Message: "workers must be at least 1"}
	}

	// Validate store configuration
	if c.Store.Backend != BackendBuntDB && c.Store.Backend != BackendSQLite {
		return &ConfigError{Field: "store.backend", Message: "backend must be buntdb or sqlite"}
	}
	if c.Store.Filename == "" {
		return &ConfigError{Field: "store.filename", Message: "store filename cannot be empty"}
	}
	if c.Store.Dir == "" && c.Store.Filename != MemoryStore {
		return &ConfigError{Field: "store.dir", Message: "store directory cannot be empty"}
	}
	if c.Store.QueryTimeout <= 0 {
		return &ConfigError{Field: "store.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Store.WriteTimeout <= 0 {
		return &ConfigError{Field: "store.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate schedule configuration
	if _, err := c.GetLocation(); err != nil {
		return &ConfigError{Field: "schedule.timezone", Message: "unknown timezone " + strconv.Quote(c.Schedule.Timezone)}
	}
	for _, m := range c.Schedule.ReducedMonths {
		if m < 1 || m > 12 {
			return &ConfigError{Field: "schedule.reduced_months", Message: "months must be between 1 and 12"}
		}
	}
	if c.Schedule.StandardHours <= 0 || c.Schedule.StandardHours > 24*time.Hour {
		return &ConfigError{Field: "schedule.standard_hours", Message: "standard day must be between 0 and 24h"}
	}
	if c.Schedule.ReducedHours <= 0 || c.Schedule.ReducedHours > 24*time.Hour {
		return &ConfigError{Field: "schedule.reduced_hours", Message: "reduced day must be between 0 and 24h"}
	}
	if c.Schedule.PauseAllowance < 0 {
		return &ConfigError{Field: "schedule.pause_allowance", Message: "pause allowance cannot be negative"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch strings.ToLower(c.Application.LogFormat) {
	case "json", "text":
	default:
		return &ConfigError{Field: "application.log_format", Message: "log format must be json or text"}
	}

	return nil
}

// ValidateForBot checks the settings only the chat bot needs
func (c *Config) ValidateForBot() error {
	if strings.TrimSpace(c.Bot.Token) == "" {
		return &ConfigError{Field: "bot.token", Message: "bot token is required (FICHAJE_BOT_TOKEN or BOT_TOKEN)"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func monthsToInts(months []time.Month) []int {
	out := make([]int, len(months))
	for i, m := range months {
		out[i] = int(m)
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ConfigFileEnv names the YAML file to load when no --config flag is given
const ConfigFileEnv = "FICHAJE_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	file   string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithFile sets the YAML file to read. An empty path falls back to FICHAJE_CONFIG.
func (l *Loader) WithFile(path string) *Loader {
	l.file = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML file, when one is named
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	path := l.file
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := loadFile(l.config, path); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Bot overrides
	BotToken *string
	Workers  *int

	// Store overrides
	StoreBackend      *string
	StoreDir          *string
	StoreFilename     *string
	StoreQueryTimeout *time.Duration
	StoreWriteTimeout *time.Duration

	// Schedule overrides
	Timezone *string

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	LogFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.BotToken != nil {
		config.Bot.Token = *overrides.BotToken
	}
	if overrides.Workers != nil {
		config.Bot.Workers = *overrides.Workers
	}

	if overrides.StoreBackend != nil {
		config.Store.Backend = *overrides.StoreBackend
	}
	if overrides.StoreDir != nil {
		config.Store.Dir = *overrides.StoreDir
	}
	if overrides.StoreFilename != nil {
		config.Store.Filename = *overrides.StoreFilename
	}
	if overrides.StoreQueryTimeout != nil {
		config.Store.QueryTimeout = *overrides.StoreQueryTimeout
	}
	if overrides.StoreWriteTimeout != nil {
		config.Store.WriteTimeout = *overrides.StoreWriteTimeout
	}

	if overrides.Timezone != nil {
		config.Schedule.Timezone = *overrides.Timezone
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
}

// ParseMonths parses a comma separated list of month numbers such as "7,8"
func ParseMonths(s string) ([]int, error) {
	var months []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: %w", part, err)
		}
		months = append(months, m)
	}
	return months, nil
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}

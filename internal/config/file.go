package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of the configuration file. Durations are
// strings such as "30s"; absent keys leave the current value untouched.
type fileConfig struct {
	Bot *struct {
		Token       *string `yaml:"token"`
		PollTimeout *string `yaml:"poll_timeout"`
		Workers     *int    `yaml:"workers"`
		Debug       *bool   `yaml:"debug"`
	} `yaml:"bot"`
	Store *struct {
		Backend        *string `yaml:"backend"`
		Dir            *string `yaml:"dir"`
		Filename       *string `yaml:"filename"`
		QueryTimeout   *string `yaml:"query_timeout"`
		WriteTimeout   *string `yaml:"write_timeout"`
		DirPermissions *string `yaml:"dir_permissions"`
	} `yaml:"store"`
	Schedule *struct {
		Timezone       *string `yaml:"timezone"`
		ReducedMonths  []int   `yaml:"reduced_months"`
		StandardHours  *string `yaml:"standard_hours"`
		ReducedHours   *string `yaml:"reduced_hours"`
		PauseAllowance *string `yaml:"pause_allowance"`
	} `yaml:"schedule"`
	Application *struct {
		Timeout   *string `yaml:"timeout"`
		Verbose   *bool   `yaml:"verbose"`
		LogFormat *string `yaml:"log_format"`
	} `yaml:"application"`
}

// loadFile overlays the YAML file at path onto c
func loadFile(c *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	return applyYAML(c, data)
}

func applyYAML(c *Config, data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	if b := fc.Bot; b != nil {
		setString(&c.Bot.Token, b.Token)
		if err := setDuration(&c.Bot.PollTimeout, b.PollTimeout, "bot.poll_timeout"); err != nil {
			return err
		}
		if b.Workers != nil {
			c.Bot.Workers = *b.Workers
		}
		if b.Debug != nil {
			c.Bot.Debug = *b.Debug
		}
	}

	if s := fc.Store; s != nil {
		setString(&c.Store.Backend, s.Backend)
		setString(&c.Store.Dir, s.Dir)
		setString(&c.Store.Filename, s.Filename)
		if err := setDuration(&c.Store.QueryTimeout, s.QueryTimeout, "store.query_timeout"); err != nil {
			return err
		}
		if err := setDuration(&c.Store.WriteTimeout, s.WriteTimeout, "store.write_timeout"); err != nil {
			return err
		}
		if s.DirPermissions != nil {
			c.Store.DirPermissions = ParseUint32WithFallback(*s.DirPermissions, 8, c.Store.DirPermissions)
		}
	}

	if s := fc.Schedule; s != nil {
		setString(&c.Schedule.Timezone, s.Timezone)
		if s.ReducedMonths != nil {
			c.Schedule.ReducedMonths = s.ReducedMonths
		}
		if err := setDuration(&c.Schedule.StandardHours, s.StandardHours, "schedule.standard_hours"); err != nil {
			return err
		}
		if err := setDuration(&c.Schedule.ReducedHours, s.ReducedHours, "schedule.reduced_hours"); err != nil {
			return err
		}
		if err := setDuration(&c.Schedule.PauseAllowance, s.PauseAllowance, "schedule.pause_allowance"); err != nil {
			return err
		}
	}

	if a := fc.Application; a != nil {
		if err := setDuration(&c.Application.Timeout, a.Timeout, "application.timeout"); err != nil {
			return err
		}
		if a.Verbose != nil {
			c.Application.Verbose = *a.Verbose
		}
		setString(&c.Application.LogFormat, a.LogFormat)
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, field string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return &ConfigError{Field: field, Message: fmt.Sprintf("invalid duration %q", *v)}
	}
	*dst = d
	return nil
}

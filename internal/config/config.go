// Package config loads client settings with layered precedence:
// defaults, user file, explicit file, .env, environment.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/ui"
)

const (
	DefaultAPIURL   = "http://localhost:8000"
	DefaultTheme    = "classic"
	DefaultLogLevel = "error"

	// EnvPrefix namespaces environment overrides, e.g. TODO_THEME.
	EnvPrefix = "TODO"
)

// Config is the effective client configuration.
type Config struct {
	// APIURL is the origin of the todo service. It only comes from config
	// files; there is no environment override.
	APIURL   string `mapstructure:"api_url" yaml:"api_url"`
	Theme    string `mapstructure:"theme" yaml:"theme"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
}

func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks the values that would otherwise fail late.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.APIURL))
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url: %q is not an http(s) URL", c.APIURL)
	}
	if !ui.ValidTheme(c.Theme) {
		return fmt.Errorf("theme: unknown %q (want one of %s)", c.Theme, strings.Join(ui.Themes, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// UserConfigDir is the directory under the OS config dir.
	UserConfigDir = "todo"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
	// DotEnvFile is loaded from the working directory if present.
	DotEnvFile = ".env"
)

// envKeys may be overridden from the environment. api_url is left out on
// purpose: the service origin is fixed per deployment.
var envKeys = []string{"theme", "log_level", "log_file"}

// Loader handles configuration loading with layered precedence:
//  1. defaults
//  2. user config (<config dir>/todo/config.yaml)
//  3. File, when set
//  4. .env, then TODO_* environment variables
type Loader struct {
	// UserFile overrides the user config path. Empty means UserConfigPath().
	UserFile string
	// File is an explicit config file (--config). It must exist.
	File string
	// EnvFile overrides the .env path. Empty means DotEnvFile.
	EnvFile string

	Logger *slog.Logger
}

func (l *Loader) Load() (Config, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	def := Default()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	userFile := l.UserFile
	if userFile == "" {
		userFile = UserConfigPath()
	}
	if userFile != "" {
		if err := mergeFile(v, userFile); err == nil {
			logger.Debug("loaded user config", "path", userFile)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("user config %s: %w", userFile, err)
		}
	}

	if l.File != "" {
		if err := mergeFile(v, l.File); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", l.File, err)
		}
		logger.Debug("loaded config", "path", l.File)
	}

	envFile := l.EnvFile
	if envFile == "" {
		envFile = DotEnvFile
	}
	if err := godotenv.Load(envFile); err == nil {
		logger.Debug("loaded env file", "path", envFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("env file %s: %w", envFile, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return v.MergeConfig(f)
}

// UserConfigPath returns the path of the user-level config file, or ""
// when the OS config dir is unknown.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, UserConfigDir, UserConfigFile)
}

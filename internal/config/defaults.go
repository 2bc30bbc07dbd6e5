package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultFile = `# todo client configuration

# Origin of the todo REST service.
api_url: http://localhost:8000

# classic | neon | mono
theme: classic

# debug | info | warn | error
log_level: error

# The interactive view logs here; empty discards its logs.
# log_file: /tmp/todo.log
`

// WriteDefault writes the default configuration to path. An existing file
// is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultFile), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// YAML renders cfg the way a config file spells it.
func (c Config) YAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("yaml marshal: %w", err)
	}
	return string(b), nil
}

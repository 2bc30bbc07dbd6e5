package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolated returns a loader that ignores the real user config and .env.
func isolated(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	return &Loader{
		UserFile: filepath.Join(dir, "user.yaml"),
		EnvFile:  filepath.Join(dir, ".env"),
	}, dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	l, _ := isolated(t)
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitFileOverridesUserFile(t *testing.T) {
	l, dir := isolated(t)
	write(t, l.UserFile, "api_url: http://user:9000\ntheme: neon\n")
	l.File = filepath.Join(dir, "explicit.yaml")
	write(t, l.File, "api_url: https://todo.example.com/api\n")

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://todo.example.com/api", cfg.APIURL)
	assert.Equal(t, "neon", cfg.Theme, "user file value kept where not overridden")
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	l, dir := isolated(t)
	l.File = filepath.Join(dir, "nope.yaml")
	_, err := l.Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverridesAllButAPIURL(t *testing.T) {
	l, _ := isolated(t)
	write(t, l.UserFile, "theme: neon\n")
	t.Setenv("TODO_THEME", "mono")
	t.Setenv("TODO_LOG_LEVEL", "debug")
	t.Setenv("TODO_API_URL", "http://elsewhere:1")

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
}

func TestLoad_DotEnv(t *testing.T) {
	l, _ := isolated(t)
	write(t, l.EnvFile, "TODO_LOG_FILE=/tmp/todo-test.log\n")
	t.Setenv("TODO_LOG_FILE", "") // restored after the test
	require.NoError(t, os.Unsetenv("TODO_LOG_FILE"))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/todo-test.log", cfg.LogFile)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad url":   "api_url: localhost:8000\n",
		"bad theme": "theme: solarized\n",
		"bad level": "log_level: loud\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			l, _ := isolated(t)
			write(t, l.UserFile, content)
			_, err := l.Load()
			assert.Error(t, err)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false), "no silent overwrite")
	require.NoError(t, WriteDefault(path, true))

	l, _ := isolated(t)
	l.File = path
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfigYAML(t *testing.T) {
	out, err := Default().YAML()
	require.NoError(t, err)
	assert.Contains(t, out, "api_url: http://localhost:8000")
	assert.Contains(t, out, "theme: classic")
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/jmm/internal/diag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "jmmc*.toml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
max_errors = 5
strict_phases = true
color = "never"
emit = "yaml"
log_level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxErrors)
	assert.True(t, cfg.StrictPhases)
	assert.Equal(t, "yaml", cfg.Emit)

	mode, err := cfg.ColorMode()
	require.NoError(t, err)
	assert.Equal(t, diag.ColorNever, mode)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "max_errors = 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxErrors)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "text", cfg.Emit)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NoError(t, Default().Validate())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "max_errors = \n", "toml"},
		{"unknown key", "colour = \"never\"\n", "unknown key \"colour\""},
		{"bad color", "color = \"rainbow\"\n", "invalid color mode"},
		{"bad emit", "emit = \"xml\"\n", "invalid emit format"},
		{"bad level", "log_level = \"loud\"\n", "invalid log_level"},
		{"negative max", "max_errors = -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, os.IsNotExist(err), "err = %v", err)
}

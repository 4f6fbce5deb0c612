package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadSelectsMatchingSection(t *testing.T) {
	path := writeTempConfig(t, `
Mode prod

[prod]
SerialPort /dev/ttyAMA0
Baud 9600
Debug false

[dev]
SerialPort /dev/ttyUSB9
Baud 1200
Debug true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Mode)
	assert.Equal(t, "/dev/ttyAMA0", cfg.SerialPort)
	assert.Equal(t, 9600, cfg.Baud)
	assert.False(t, cfg.Debug)
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := writeTempConfig(t, `
Mode prod

[prod]
SerialPort /dev/ttyAMA0
ThisKeyDoesNotExist banana
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyAMA0", cfg.SerialPort)
}

func TestLoadRejectsBadNumericField(t *testing.T) {
	path := writeTempConfig(t, `
Mode prod

[prod]
Baud notanumber
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/titonbridge.txt")
	assert.Error(t, err)
}

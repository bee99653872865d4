package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
signals: [HUP, USR1, USR2]
quit_signal: INT
extra_flags: 8
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"HUP", "USR1", "USR2"}, cfg.Signals)
	assert.Equal(t, "INT", cfg.QuitSignal)
	assert.Equal(t, uint64(8), cfg.ExtraFlags)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`signals: [TERM]`))
	require.NoError(t, err)
	assert.Equal(t, "TERM", cfg.QuitSignal)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromBytesInvalid(t *testing.T) {
	_, err := LoadFromBytes([]byte(`logging: {level: loud}`))
	assert.ErrorContains(t, err, "invalid logging level")

	_, err = LoadFromBytes([]byte(`logging: {format: xml}`))
	assert.ErrorContains(t, err, "invalid logging format")

	_, err = LoadFromBytes([]byte(`signals: {`))
	assert.ErrorContains(t, err, "parse config")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Signals)
	assert.Equal(t, "TERM", cfg.QuitSignal)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigwait.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signals: [HUP]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"HUP"}, cfg.Signals)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

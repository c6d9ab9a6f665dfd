package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "./aswapd.db", cfg.DB)
	assert.Equal(t, backendIAVL, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "aswapd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "aswapd.toml")
	content := "db = \"/var/lib/aswapd\"\nbackend = \"bolt\"\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))

	setEnv(t, "ASWAPD_CONFIG", path)
	setEnv(t, "ASWAPD_LOG_LEVEL", "debug")
	defer os.Unsetenv("ASWAPD_CONFIG")
	defer os.Unsetenv("ASWAPD_LOG_LEVEL")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/aswapd", cfg.DB)
	assert.Equal(t, backendBolt, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)

	// environment takes precedence over the file
	setEnv(t, "ASWAPD_BACKEND", "iavl")
	defer os.Unsetenv("ASWAPD_BACKEND")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, backendIAVL, cfg.Backend)
}

func TestLoadConfigMissingFile(t *testing.T) {
	setEnv(t, "ASWAPD_CONFIG", "/does/not/exist.toml")
	defer os.Unsetenv("ASWAPD_CONFIG")
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "info")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("visible")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}

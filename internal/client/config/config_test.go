package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_NoFlags(t *testing.T) {
	cfg, rest, err := LoadConfig([]string{"login", "alice"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, []string{"login", "alice"}, rest)
}

func TestLoadConfig_Error(t *testing.T) {
	_, _, err := LoadConfig([]string{"-unknown"})
	assert.Error(t, err)
}

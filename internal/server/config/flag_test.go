package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:9090", "-l", "127.0.0.1:9091", "-d", "postgres://db", "-s", "seed.json",
			"-o", "7", "-st", "250ms", "-m", "12", "-t", "2", "-p", "3", "-n", "5",
			"-log-level", "debug", "-log-format", "text",
		}, expected: &Config{
			EndpointAddrGRPC: "127.0.0.1:9090",
			EndpointAddrHTTP: "127.0.0.1:9091",
			DatabaseDSN:      "postgres://db",
			SeedFile:         "seed.json",
			MaxOpenConns:     7,
			StoreTimeout:     250 * time.Millisecond,
			HashMemory:       12,
			HashTime:         2,
			HashThreads:      3,
			HashConcurrency:  5,
			LogLevel:         "debug",
			LogFormat:        "text",
		}},
		{name: "foreign flags ignored", args: []string{"-c", "conf.yaml", "-x", "-a", ":1"},
			expected: &Config{EndpointAddrGRPC: ":1"}},
		{name: "bad duration", args: []string{"-st", "soon"}, expectErr: true},
		{name: "bad int", args: []string{"-o", "many"}, expectErr: true},
		{name: "hash parameter overflow", args: []string{"-m", "300"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

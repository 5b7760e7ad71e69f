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
		rest      []string
		expectErr bool
	}{
		{name: "address and timeout", args: []string{"-a", "127.0.0.1:9090", "-timeout", "3s", "register", "bob"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", RequestTimeout: 3 * time.Second},
			rest:     []string{"register", "bob"}},
		{name: "flags after command are operands", args: []string{"login", "-a", "x"},
			expected: &Config{},
			rest:     []string{"login", "-a", "x"}},
		{name: "incorrect timeout", args: []string{"-timeout", "abc"}, expectErr: true},
		{name: "negative timeout", args: []string{"-timeout", "-1s"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			rest, err := parseFlags(config, tt.args)

			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
			assert.Equal(t, tt.rest, rest)
		})
	}
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		base        *Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:8081", "-m", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "1", "-r", "3", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1",
				"-e", "http://endpoint", "-l", "debug",
			},
			base: &Config{},
			expected: &Config{
				EndpointAddrHTTP:             "127.0.0.1:8081",
				EndpointAddrGRPC:             "127.0.0.1:9090",
				DatabaseDSN:                  "db",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  1 * time.Minute,
				RefreshTokenValidityDuration: 3 * time.Minute,
				S3RootUser:                   "user",
				S3RootPassword:               "password",
				S3Bucket:                     "bucket",
				S3Region:                     "us-west-1",
				S3BaseEndpoint:               "http://endpoint",
				LogLevel:                     "debug",
			},
		},
		{
			name:     "durations untouched without flags",
			args:     []string{"cmd", "-c", "ignored.json"},
			base:     &Config{AccessTokenValidityDuration: 90 * time.Second},
			expected: &Config{AccessTokenValidityDuration: 90 * time.Second},
		},
		{
			name:        "bad int panics",
			args:        []string{"cmd", "-t", "soon"},
			base:        &Config{},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(tt.base) })
				return
			}
			require.NotPanics(t, func() { parseFlags(tt.base) })
			assert.Empty(t, cmp.Diff(tt.expected, tt.base))
		})
	}
}

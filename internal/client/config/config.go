package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the taskio CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - SessionFile: where the login session (tokens) is cached.
//   - RequestTimeout: upper bound for a single RPC.
type Config struct {
	ServerEndpointAddr string
	SessionFile        string
	RequestTimeout     time.Duration
}

var userHomeDir = os.UserHomeDir

// DefaultSessionFile is ~/.config/taskio/session.json, or a file in the
// working directory when the home directory is unknown.
func DefaultSessionFile() string {
	home, err := userHomeDir()
	if err != nil || home == "" {
		return "taskio-session.json"
	}
	return filepath.Join(home, ".config", "taskio", "session.json")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionFile = DefaultSessionFile()
	c.RequestTimeout = 10 * time.Second
}

// parseEnv overlays TASKIO_SERVER, TASKIO_SESSION_FILE and TASKIO_TIMEOUT.
// A malformed timeout is ignored.
func parseEnv(c *Config) {
	if v := os.Getenv("TASKIO_SERVER"); v != "" {
		c.ServerEndpointAddr = v
	}
	if v := os.Getenv("TASKIO_SESSION_FILE"); v != "" {
		c.SessionFile = v
	}
	if v := os.Getenv("TASKIO_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.RequestTimeout = d
		}
	}
}

// LoadConfig applies defaults and then the environment. Command-line flags
// are bound by the CLI on top of the returned value.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}

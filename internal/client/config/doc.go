// Package config loads runtime configuration for the taskio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: TASKIO_SERVER, TASKIO_SESSION_FILE, TASKIO_TIMEOUT.
//  3. Persistent command-line flags bound by the CLI (--server, --session).
//
// Primary API
//
//   - type Config                     - holds ServerEndpointAddr, SessionFile and RequestTimeout
//   - func LoadConfig() *Config       - builds Config from defaults and the environment
//   - func (*Config) LoadDefaults()   - sets sensible defaults
package config

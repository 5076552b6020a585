package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskio/internal/flagx"
	"github.com/dmitrijs2005/taskio/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept both
// strings such as "1h" and integer nanoseconds.
type FileConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	TokenCleanupInterval         timex.Duration `json:"token_cleanup_interval" yaml:"token_cleanup_interval"`
	ShutdownTimeout              timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c/-config, if any, and overlays its
// non-empty values. Files ending in .yaml or .yml are decoded as YAML,
// everything else as JSON. Unreadable or malformed files panic.
func parseFile(config *Config) {
	file := flagx.ConfigFileFlag(os.Args[1:])
	if file.Path == "" {
		return
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch file.Format {
	case flagx.FormatYAML:
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	str := func(src string, dst *string) {
		if src != "" {
			*dst = src
		}
	}
	dur := func(src timex.Duration, dst *time.Duration) {
		if src.Duration != 0 {
			*dst = src.Duration
		}
	}

	str(c.EndpointAddrHTTP, &config.EndpointAddrHTTP)
	str(c.EndpointAddrGRPC, &config.EndpointAddrGRPC)
	str(c.DatabaseDSN, &config.DatabaseDSN)
	str(c.SecretKey, &config.SecretKey)
	dur(c.AccessTokenValidityDuration, &config.AccessTokenValidityDuration)
	dur(c.RefreshTokenValidityDuration, &config.RefreshTokenValidityDuration)
	dur(c.TokenCleanupInterval, &config.TokenCleanupInterval)
	dur(c.ShutdownTimeout, &config.ShutdownTimeout)
	str(c.S3RootUser, &config.S3RootUser)
	str(c.S3RootPassword, &config.S3RootPassword)
	str(c.S3Bucket, &config.S3Bucket)
	str(c.S3Region, &config.S3Region)
	str(c.S3BaseEndpoint, &config.S3BaseEndpoint)
	str(c.LogLevel, &config.LogLevel)
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "TASKIO_"

// dotenvLoad is a seam for tests.
var dotenvLoad = func() error { return godotenv.Load() }

// parseEnv overlays TASKIO_* environment variables. A .env file in the
// working directory, when present, seeds variables that are not already set.
func parseEnv(config *Config) {
	// a missing .env is the common case
	_ = dotenvLoad()

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*dst = d
	}

	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("SECRET_KEY", &config.SecretKey)
	dur("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	dur("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
	dur("TOKEN_CLEANUP_INTERVAL", &config.TokenCleanupInterval)
	dur("SHUTDOWN_TIMEOUT", &config.ShutdownTimeout)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("LOG_LEVEL", &config.LogLevel)
}

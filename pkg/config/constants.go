package config

// EnvPrefix is passed to envconfig; individual fields pin explicit names so the
// prefix only matters for unannotated additions.
const EnvPrefix = "SHOPFRONT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and deploy manifests.
const (
	EnvAppEnv      = "SHOPFRONT_APP_ENV"
	EnvPort        = "SHOPFRONT_APP_PORT"
	EnvRedisURL    = "SHOPFRONT_REDIS_URL"
	EnvJWTSecret   = "SHOPFRONT_JWT_SECRET"
	EnvJWTIssuer   = "SHOPFRONT_JWT_ISSUER"
	EnvUpstreamURL = "SHOPFRONT_UPSTREAM_BASE_URL"
)

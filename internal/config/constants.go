package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultHost       = "0.0.0.0"
	defaultPort       = 8000
	defaultEnv        = "production"
	devEnv            = "development"

	defaultStoreTimeout    = 10 * time.Second
	defaultCarCollection   = "car"
	defaultBlogCollection  = "blogpost"
	defaultCacheTTL        = 15 * time.Second
	defaultLogsSubdir      = "logs"
	defaultCacheKeyPrefix  = "showroom-api-cache:"
	allowedOriginSeparator = ","
)

// Environment variables read on top of the YAML file.
const (
	EnvDatabaseURL    = "DATABASE_URL"
	EnvDatabaseName   = "DATABASE_NAME"
	EnvPort           = "PORT"
	EnvHost           = "HOST"
	EnvAppEnv         = "APP_ENV"
	EnvLogDir         = "LOG_DIR"
	EnvRedisURL       = "REDIS_URL"
	EnvCacheTTL       = "CACHE_TTL"
	EnvStoreTimeout   = "STORE_TIMEOUT"
	EnvCarCollection  = "CAR_COLLECTION"
	EnvBlogCollection = "BLOG_COLLECTION"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"
	EnvCredentials    = "GOOGLE_APPLICATION_CREDENTIALS"
)

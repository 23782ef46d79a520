package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Host           string             `yaml:"host" validate:"required"`
	Port           int                `yaml:"port" validate:"min=1,max=65535"`
	Env            string             `yaml:"env" validate:"oneof=development production test"`
	Store          StoreRuntimeConfig `yaml:"store"`
	Collections    CollectionsConfig  `yaml:"collections"`
	Cache          CacheRuntimeConfig `yaml:"cache"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
}

// StoreRuntimeConfig describes the document store connection.
// An empty URL or Name leaves the store unavailable; this is not an error.
type StoreRuntimeConfig struct {
	URL             string        `yaml:"url"`
	Name            string        `yaml:"name"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	CredentialsFile string        `yaml:"credentials_file"` // firestore only
}

type CollectionsConfig struct {
	Cars  string `yaml:"cars" validate:"required"`
	Blogs string `yaml:"blogs" validate:"required"`
}

// CacheRuntimeConfig controls the optional Redis response cache.
type CacheRuntimeConfig struct {
	Enable    bool          `yaml:"enable"`
	RedisURL  string        `yaml:"redis_url" validate:"required_if=Enable true"`
	TTL       time.Duration `yaml:"ttl" validate:"gt=0"`
	KeyPrefix string        `yaml:"key_prefix" validate:"required"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

type rawAppConfig struct {
	Host           string         `yaml:"host"`
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"`
	AppEnv         string         `yaml:"app_env"`
	Store          rawStoreConfig `yaml:"store"`
	Database       rawStoreConfig `yaml:"database"`
	DatabaseURL    string         `yaml:"database_url"`
	DatabaseName   string         `yaml:"database_name"`
	Collections    rawCollections `yaml:"collections"`
	Cache          rawCacheConfig `yaml:"cache"`
	RedisURL       string         `yaml:"redis_url"`
	Paths          rawPathsConfig `yaml:"paths"`
	LogDir         string         `yaml:"log_dir"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	CORSOrigins    []string       `yaml:"cors_allowed_origins"`
}

type rawStoreConfig struct {
	URL             string `yaml:"url"`
	URI             string `yaml:"uri"`
	Name            string `yaml:"name"`
	DBName          string `yaml:"db_name"`
	Timeout         string `yaml:"timeout"`
	CredentialsFile string `yaml:"credentials_file"`
}

type rawCollections struct {
	Cars  string `yaml:"cars"`
	Car   string `yaml:"car"`
	Blogs string `yaml:"blogs"`
	Blog  string `yaml:"blogpost"`
}

type rawCacheConfig struct {
	Enable    *bool  `yaml:"enable"`
	RedisURL  string `yaml:"redis_url"`
	TTL       string `yaml:"ttl"`
	KeyPrefix string `yaml:"key_prefix"`
}

type rawPathsConfig struct {
	Logs string `yaml:"logs"`
}

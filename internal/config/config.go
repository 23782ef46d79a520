package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load reads startup configuration. An empty configPath means DefaultConfigPath,
// which may be absent; an explicitly named file must exist. Environment
// variables are applied on top of the file and the result is validated.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		if err := applyRawAppConfig(&cfg, raw); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg = normalizeAppConfig(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Host: defaultHost,
		Port: defaultPort,
		Env:  defaultEnv,
		Store: StoreRuntimeConfig{
			Timeout: defaultStoreTimeout,
		},
		Collections: CollectionsConfig{
			Cars:  defaultCarCollection,
			Blogs: defaultBlogCollection,
		},
		Cache: CacheRuntimeConfig{
			TTL:       defaultCacheTTL,
			KeyPrefix: defaultCacheKeyPrefix,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if v := strings.TrimSpace(raw.Host); v != "" {
		cfg.Host = v
	}
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.AppEnv); v != "" {
		cfg.Env = v
	}

	store, err := applyRawStoreConfig(cfg.Store, raw)
	if err != nil {
		return err
	}
	cfg.Store = store

	if v := firstNonEmpty(raw.Collections.Cars, raw.Collections.Car); v != "" {
		cfg.Collections.Cars = v
	}
	if v := firstNonEmpty(raw.Collections.Blogs, raw.Collections.Blog); v != "" {
		cfg.Collections.Blogs = v
	}

	if raw.Cache.Enable != nil {
		cfg.Cache.Enable = *raw.Cache.Enable
	}
	if v := firstNonEmpty(raw.Cache.RedisURL, raw.RedisURL); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := strings.TrimSpace(raw.Cache.TTL); v != "" {
		ttl, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid cache.ttl %q: %w", v, err)
		}
		cfg.Cache.TTL = ttl
	}
	if v := strings.TrimSpace(raw.Cache.KeyPrefix); v != "" {
		cfg.Cache.KeyPrefix = v
	}

	if v := firstNonEmpty(raw.Paths.Logs, raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = raw.AllowedOrigins
	case raw.CORSOrigins != nil:
		cfg.AllowedOrigins = raw.CORSOrigins
	}
	return nil
}

func applyRawStoreConfig(current StoreRuntimeConfig, raw rawAppConfig) (StoreRuntimeConfig, error) {
	cfg := current

	// later sources win: database.* < store.* < top-level aliases
	for _, section := range []rawStoreConfig{raw.Database, raw.Store} {
		if v := firstNonEmpty(section.URL, section.URI); v != "" {
			cfg.URL = v
		}
		if v := firstNonEmpty(section.Name, section.DBName); v != "" {
			cfg.Name = v
		}
		if v := strings.TrimSpace(section.Timeout); v != "" {
			timeout, err := parseDuration(v)
			if err != nil {
				return cfg, fmt.Errorf("invalid store timeout %q: %w", v, err)
			}
			cfg.Timeout = timeout
		}
		if v := strings.TrimSpace(section.CredentialsFile); v != "" {
			cfg.CredentialsFile = v
		}
	}
	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.DatabaseName); v != "" {
		cfg.Name = v
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	if v, ok := lookupEnv(EnvDatabaseURL); ok {
		cfg.Store.URL = v
	}
	if v, ok := lookupEnv(EnvDatabaseName); ok {
		cfg.Store.Name = v
	}
	if v, ok := lookupEnv(EnvCredentials); ok && cfg.Store.CredentialsFile == "" {
		cfg.Store.CredentialsFile = v
	}
	if v, ok := lookupEnv(EnvStoreTimeout); ok {
		timeout, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvStoreTimeout, v, err)
		}
		cfg.Store.Timeout = timeout
	}
	if v, ok := lookupEnv(EnvHost); ok {
		cfg.Host = v
	}
	if v, ok := lookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v, ok := lookupEnv(EnvAppEnv); ok {
		cfg.Env = v
	}
	if v, ok := lookupEnv(EnvLogDir); ok {
		cfg.Paths.Logs = v
	}
	if v, ok := lookupEnv(EnvCarCollection); ok {
		cfg.Collections.Cars = v
	}
	if v, ok := lookupEnv(EnvBlogCollection); ok {
		cfg.Collections.Blogs = v
	}
	if v, ok := lookupEnv(EnvRedisURL); ok {
		cfg.Cache.RedisURL = v
		cfg.Cache.Enable = true
	}
	if v, ok := lookupEnv(EnvCacheTTL); ok {
		ttl, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvCacheTTL, v, err)
		}
		cfg.Cache.TTL = ttl
	}
	if v, ok := lookupEnv(EnvAllowedOrigins); ok {
		cfg.AllowedOrigins = strings.Split(v, allowedOriginSeparator)
	}
	return nil
}

// EnvPresent reports whether key holds a non-blank value in the process
// environment. File settings do not count.
func EnvPresent(key string) bool {
	_, ok := lookupEnv(key)
	return ok
}

func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// parseDuration accepts Go duration strings ("10s") and bare seconds ("10").
func parseDuration(raw string) (time.Duration, error) {
	v := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// IsDev reports whether the service runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, devEnv)
}

// Addr returns the HTTP listen address.
func (c *AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *AppConfig) LogDir() string {
	dir := defaultLogsSubdir
	if c != nil && c.Paths.Logs != "" {
		dir = c.Paths.Logs
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(baseDir(), dir)
}

// baseDir anchors relative runtime paths: the directory of the resolved
// executable, or the working directory when that is unknown.
func baseDir() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// HasStoreURL reports whether a connection string was supplied.
func (c StoreRuntimeConfig) HasStoreURL() bool { return c.URL != "" }

// HasStoreName reports whether a database name was supplied.
func (c StoreRuntimeConfig) HasStoreName() bool { return c.Name != "" }

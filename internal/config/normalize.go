package config

import "strings"

func normalizeAppConfig(cfg AppConfig) AppConfig {
	cfg.Host = strings.TrimSpace(cfg.Host)
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Store = normalizeStoreConfig(cfg.Store)
	cfg.Collections.Cars = strings.TrimSpace(cfg.Collections.Cars)
	cfg.Collections.Blogs = strings.TrimSpace(cfg.Collections.Blogs)
	cfg.Cache.RedisURL = normalizeRedisRawURL(cfg.Cache.RedisURL)
	cfg.Cache.KeyPrefix = strings.TrimSpace(cfg.Cache.KeyPrefix)
	cfg.Paths.Logs = strings.TrimSpace(cfg.Paths.Logs)
	if cfg.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	}
	return cfg
}

func normalizeStoreConfig(cfg StoreRuntimeConfig) StoreRuntimeConfig {
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.CredentialsFile = strings.TrimSpace(cfg.CredentialsFile)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultStoreTimeout
	}
	return cfg
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	switch trimmed {
	case "":
		return defaultEnv
	case "dev":
		return devEnv
	case "prod":
		return defaultEnv
	}
	return trimmed
}

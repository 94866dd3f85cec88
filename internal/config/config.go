// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
)

// Processing defaults.
const (
	DefaultInferWorkers       = 8
	DefaultMaxSamples         = 100
	DefaultStatsMaxDepth      = 5
	DefaultValidatorCacheSize = 64
	DefaultExtractMaxResults  = 1000
)

// Config holds all configuration for the schemaprobe server.
type Config struct {
	InferWorkers       int // INFER_WORKERS, parallel per-sample inference limit
	MaxSamples         int // MAX_SAMPLES, cap on samples per tool call
	StatsMaxDepth      int // STATS_MAX_DEPTH, field-stats recursion cap
	ValidatorCacheSize int // VALIDATOR_CACHE_SIZE, compiled validator LRU size
	ExtractMaxResults  int // EXTRACT_MAX_RESULTS, cap on jq-extracted values

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		InferWorkers:       getEnvInt("INFER_WORKERS", DefaultInferWorkers),
		MaxSamples:         getEnvInt("MAX_SAMPLES", DefaultMaxSamples),
		StatsMaxDepth:      getEnvInt("STATS_MAX_DEPTH", DefaultStatsMaxDepth),
		ValidatorCacheSize: getEnvInt("VALIDATOR_CACHE_SIZE", DefaultValidatorCacheSize),
		ExtractMaxResults:  getEnvInt("EXTRACT_MAX_RESULTS", DefaultExtractMaxResults),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

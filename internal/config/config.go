// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

// Conversion defaults
const (
	DefaultOutputDir          = "exports"
	DefaultCacheMaxItemsValue = 128
	DefaultMaxInputBytesValue = 10 << 20
)

// Error preview defaults (compact rendering of the offending element)
const (
	DefaultPreviewMaxArrayItems = 3
	DefaultPreviewMaxStringLen  = 120
)

// Config holds all configuration for the MCP server.
type Config struct {
	OutputDir       string // OUTPUT_DIR, default "exports"
	DefaultFileName string // DEFAULT_FILE_NAME, default "keywords"
	CacheMaxItems   int    // CONVERSION_CACHE_MAX_ITEMS, default 128
	MaxInputBytes   int    // MAX_INPUT_BYTES, default 10 MiB

	// Error preview limits
	PreviewMaxArrayItems int // PREVIEW_MAX_ARRAY_ITEMS
	PreviewMaxStringLen  int // PREVIEW_MAX_STRING_LEN

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		OutputDir:       getEnvString("OUTPUT_DIR", DefaultOutputDir),
		DefaultFileName: getEnvString("DEFAULT_FILE_NAME", keywords.DefaultBaseName),
		CacheMaxItems:   getEnvInt("CONVERSION_CACHE_MAX_ITEMS", DefaultCacheMaxItemsValue),
		MaxInputBytes:   getEnvInt("MAX_INPUT_BYTES", DefaultMaxInputBytesValue),

		PreviewMaxArrayItems: getEnvInt("PREVIEW_MAX_ARRAY_ITEMS", DefaultPreviewMaxArrayItems),
		PreviewMaxStringLen:  getEnvInt("PREVIEW_MAX_STRING_LEN", DefaultPreviewMaxStringLen),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
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

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"ocr-notes-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	MaxFileSize    int64
	LogLevel       string
	LogFormat      string
	TessdataPrefix string
	OCRLanguages   []string
	RasterDPI      float64
	OCRPageTimeout time.Duration
	MaxArtifacts   int
	AllowedOrigins []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// PaaS hosts provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		TessdataPrefix: getEnvOrDefault("TESSDATA_PREFIX", "./tessdata"),
		OCRLanguages:   getEnvListOrDefault("OCR_LANGUAGES", []string{"eng"}),
		RasterDPI:      getEnvFloatOrDefault("RASTER_DPI", 300),
		OCRPageTimeout: getEnvDurationOrDefault("OCR_PAGE_TIMEOUT", 90*time.Second),
		MaxArtifacts:   int(getEnvInt64OrDefault("MAX_ARTIFACTS", 0)), // 0 = unbounded
		AllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format (text or json)
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetTessdataPrefix returns the directory holding tesseract language data
func (c *AppConfig) GetTessdataPrefix() string {
	return c.TessdataPrefix
}

// GetOCRLanguages returns the tesseract languages loaded at start
func (c *AppConfig) GetOCRLanguages() []string {
	return c.OCRLanguages
}

// GetRasterDPI returns the resolution PDF pages are rendered at
func (c *AppConfig) GetRasterDPI() float64 {
	return c.RasterDPI
}

// GetOCRPageTimeout returns the per-page recognition timeout
func (c *AppConfig) GetOCRPageTimeout() time.Duration {
	return c.OCRPageTimeout
}

// GetMaxArtifacts returns the store bound; 0 means unbounded
func (c *AppConfig) GetMaxArtifacts() int {
	return c.MaxArtifacts
}

// GetAllowedOrigins returns the CORS origin allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
